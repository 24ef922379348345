// Package revalidate tells the frontend to rebuild its cached pages after a
// portfolio write.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = time.Minute

type Client struct {
	url    string
	secret string
	http   *http.Client
	logger *slog.Logger
	wg     sync.WaitGroup
}

// New returns a Client posting to url. An empty url disables revalidation.
func New(url, secret string, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		secret: secret,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (c *Client) Enabled() bool { return c.url != "" }

// Changed triggers revalidation in the background.
func (c *Client) Changed(resource string) {
	if !c.Enabled() {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Trigger(context.Background(), resource); err != nil {
			c.logger.Warn("error triggering revalidation", "resource", resource, "error", err)
			return
		}
		c.logger.Debug("revalidation triggered", "resource", resource)
	}()
}

// Wait blocks until every background trigger has finished or ctx is done.
func (c *Client) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger posts {"secret","resource"} to the revalidation endpoint with a
// short-lived HS256 bearer token signed by the shared secret.
func (c *Client) Trigger(ctx context.Context, resource string) error {
	payload, err := json.Marshal(map[string]string{
		"secret":   c.secret,
		"resource": resource,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		token, err := c.token(resource, time.Now())
		if err != nil {
			return fmt.Errorf("sign revalidation token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("revalidation failed with status code: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) token(resource string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"resource": resource,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(c.secret))
}
