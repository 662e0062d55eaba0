package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/Dan9191/blog-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	user *models.User
	err  error
}

func (s *stubUsers) FindUserByID(_ context.Context, _ int) (*models.User, error) {
	return s.user, s.err
}

func TestResolveReturnsLiveUser(t *testing.T) {
	svc := newTokenService(t, "HS256")
	now := time.Now()
	token, err := svc.Issue(42, now)
	require.NoError(t, err)

	want := &models.User{ID: 42, Email: "a@x.com"}
	resolver := NewResolver(svc, &stubUsers{user: want})

	got, err := resolver.Resolve(context.Background(), token, now)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveInvalidToken(t *testing.T) {
	svc := newTokenService(t, "HS256")
	resolver := NewResolver(svc, &stubUsers{user: &models.User{ID: 42}})

	_, err := resolver.Resolve(context.Background(), "garbage", time.Now())
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestResolveDeletedUser(t *testing.T) {
	svc := newTokenService(t, "HS256")
	now := time.Now()
	token, err := svc.Issue(42, now)
	require.NoError(t, err)

	// The token is valid, but the subject no longer exists.
	resolver := NewResolver(svc, &stubUsers{err: repository.ErrNotFound})

	_, err = resolver.Resolve(context.Background(), token, now)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestResolveStoreFailure(t *testing.T) {
	svc := newTokenService(t, "HS256")
	now := time.Now()
	token, err := svc.Issue(42, now)
	require.NoError(t, err)

	resolver := NewResolver(svc, &stubUsers{err: errors.New("connection refused")})

	_, err = resolver.Resolve(context.Background(), token, now)
	require.Error(t, err)
	// A store outage is not an authentication verdict.
	assert.NotErrorIs(t, err, ErrAuthentication)
}
