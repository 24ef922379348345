package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/aTrapDeer/portfolio-backend/internal/portfolio"
	"github.com/aTrapDeer/portfolio-backend/internal/rpc"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
	"github.com/aTrapDeer/portfolio-backend/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	st, err := store.Open(store.DriverSQLite, dsn, store.WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(rpc.NewHandler(portfolio.New(st, portfolio.WithLogger(quiet)), rpc.WithLogger(quiet)))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestLoadPortfolio(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	empty, err := c.LoadPortfolio(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty.ContactInfo)
	assert.Empty(t, empty.Skills)

	_, err = c.UpdateContactInfo(ctx, schema.UpdateContactInfoInput{Name: schema.Of("Ana"), Github: schema.NullableOf("https://github.com/ana")})
	require.NoError(t, err)
	_, err = c.CreateSkill(ctx, schema.CreateSkillInput{Name: "Go", Category: "Backend", ProficiencyLevel: 9, IsFeatured: true})
	require.NoError(t, err)
	_, err = c.CreateSkill(ctx, schema.CreateSkillInput{Name: "Bash", Category: "DevOps", ProficiencyLevel: 5})
	require.NoError(t, err)

	p, err := c.LoadPortfolio(ctx)
	require.NoError(t, err)
	require.NotNil(t, p.ContactInfo)
	assert.Equal(t, "Ana", p.ContactInfo.Name)
	require.NotNil(t, p.ContactInfo.Github)
	assert.Equal(t, "https://github.com/ana", *p.ContactInfo.Github)
	assert.Len(t, p.Skills, 2)
	require.Len(t, p.FeaturedSkills, 1)
	assert.Equal(t, "Go", p.FeaturedSkills[0].Name)
	assert.Empty(t, p.Projects)
}

func TestSubmitContact(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	sub, err := c.SubmitContact(ctx, schema.CreateContactSubmissionInput{Name: "Bo", Email: "bo@example.com", Message: "Hi"})
	require.NoError(t, err)
	assert.False(t, sub.IsRead)

	unread, err := c.UnreadContactSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	read, err := c.MarkContactSubmissionRead(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
}

func TestErrorsAreTyped(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.SubmitContact(ctx, schema.CreateContactSubmissionInput{Name: "Bo", Email: "not-an-email", Message: "Hi"})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
	require.Len(t, apiErr.Issues, 1)
	assert.Equal(t, "email", apiErr.Issues[0].Path)

	_, err = c.MarkContactSubmissionRead(ctx, 99)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestHealth(t *testing.T) {
	h, err := newTestClient(t).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
}
