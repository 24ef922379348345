package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestTriggerSignsRequest(t *testing.T) {
	const secret = "s3cret"
	type seen struct {
		body   map[string]string
		claims jwt.MapClaims
	}
	got := make(chan seen, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var s seen
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&s.body))

		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		s.claims = token.Claims.(jwt.MapClaims)
		got <- s
	}))
	defer srv.Close()

	c := New(srv.URL, secret, quiet)
	require.NoError(t, c.Trigger(context.Background(), "skills"))

	s := <-got
	assert.Equal(t, secret, s.body["secret"])
	assert.Equal(t, "skills", s.body["resource"])
	assert.Equal(t, "skills", s.claims["resource"])
}

func TestTriggerReportsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL, "", quiet).Trigger(context.Background(), "projects")
	assert.EqualError(t, err, "revalidation failed with status code: 502")
}

func TestChangedRunsInBackground(t *testing.T) {
	hit := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		hit <- body["resource"]
	}))
	defer srv.Close()

	New(srv.URL, "x", quiet).Changed("education")
	select {
	case resource := <-hit:
		assert.Equal(t, "education", resource)
	case <-time.After(2 * time.Second):
		t.Fatal("revalidation endpoint was not called")
	}
}

func TestWaitDrainsPendingTriggers(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := New(srv.URL, "x", quiet)
	c.Changed("skills")
	c.Changed("projects")

	short, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Wait(short), context.DeadlineExceeded)

	close(release)
	require.NoError(t, c.Wait(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDisabledWithoutURL(t *testing.T) {
	c := New("", "x", quiet)
	assert.False(t, c.Enabled())
	c.Changed("skills")
}

func TestTokenExpires(t *testing.T) {
	c := New("http://unused", "k", quiet)
	raw, err := c.token("skills", time.Now().Add(-2*tokenTTL))
	require.NoError(t, err)

	_, err = jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte("k"), nil })
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
