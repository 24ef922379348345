// Package client is a typed Go client for the portfolio procedures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/portfolio"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Error is a failed procedure call as reported by the server.
type Error struct {
	Status  int
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Issues  []schema.Issue `json:"issues"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

type envelope[T any] struct {
	Result *struct {
		Data T `json:"data"`
	} `json:"result"`
	Error *Error `json:"error"`
}

func query[T any](ctx context.Context, c *Client, name string, input any) (T, error) {
	target := c.baseURL + "/rpc/" + name
	if input != nil {
		raw, err := json.Marshal(input)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("failed to marshal input: %w", err)
		}
		target += "?input=" + url.QueryEscape(string(raw))
	}
	return do[T](ctx, c, http.MethodGet, target, nil)
}

func mutate[T any](ctx context.Context, c *Client, name string, input any) (T, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to marshal input: %w", err)
	}
	return do[T](ctx, c, http.MethodPost, c.baseURL+"/rpc/"+name, bytes.NewReader(raw))
}

func do[T any](ctx context.Context, c *Client, method, target string, body io.Reader) (T, error) {
	var zero T
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if env.Error != nil {
		env.Error.Status = resp.StatusCode
		return zero, env.Error
	}
	if env.Result == nil {
		return zero, fmt.Errorf("empty response (status %d)", resp.StatusCode)
	}
	return env.Result.Data, nil
}

func (c *Client) Health(ctx context.Context) (portfolio.Health, error) {
	return query[portfolio.Health](ctx, c, "healthcheck", nil)
}

// ContactInfo returns nil when the owner has not filled it in yet.
func (c *Client) ContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	return query[*models.ContactInfo](ctx, c, "contactInfo.get", nil)
}

func (c *Client) UpdateContactInfo(ctx context.Context, in schema.UpdateContactInfoInput) (*models.ContactInfo, error) {
	return mutate[*models.ContactInfo](ctx, c, "contactInfo.update", in)
}

func (c *Client) Skills(ctx context.Context) ([]models.Skill, error) {
	return query[[]models.Skill](ctx, c, "skills.list", nil)
}

func (c *Client) FeaturedSkills(ctx context.Context) ([]models.Skill, error) {
	return query[[]models.Skill](ctx, c, "skills.listFeatured", nil)
}

func (c *Client) CreateSkill(ctx context.Context, in schema.CreateSkillInput) (*models.Skill, error) {
	return mutate[*models.Skill](ctx, c, "skills.create", in)
}

func (c *Client) Experience(ctx context.Context) ([]models.Experience, error) {
	return query[[]models.Experience](ctx, c, "experience.list", nil)
}

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	return query[[]models.Project](ctx, c, "projects.list", nil)
}

func (c *Client) FeaturedProjects(ctx context.Context) ([]models.Project, error) {
	return query[[]models.Project](ctx, c, "projects.listFeatured", nil)
}

func (c *Client) Education(ctx context.Context) ([]models.Education, error) {
	return query[[]models.Education](ctx, c, "education.list", nil)
}

// SubmitContact sends the public contact form.
func (c *Client) SubmitContact(ctx context.Context, in schema.CreateContactSubmissionInput) (*models.ContactSubmission, error) {
	return mutate[*models.ContactSubmission](ctx, c, "contactSubmissions.create", in)
}

func (c *Client) UnreadContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	return query[[]models.ContactSubmission](ctx, c, "contactSubmissions.listUnread", nil)
}

func (c *Client) MarkContactSubmissionRead(ctx context.Context, id uint) (*models.ContactSubmission, error) {
	return mutate[*models.ContactSubmission](ctx, c, "contactSubmissions.markRead", schema.IDInput{ID: id})
}
