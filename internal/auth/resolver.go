package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/Dan9191/blog-service/internal/repository"
)

// UserFinder is the slice of the repository the resolver needs.
type UserFinder interface {
	FindUserByID(ctx context.Context, id int) (*models.User, error)
}

// Resolver turns bearer tokens into live User entities.
type Resolver struct {
	tokens *TokenService
	users  UserFinder
}

// NewResolver creates an identity resolver.
func NewResolver(tokens *TokenService, users UserFinder) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve verifies the token and loads the user it identifies. A valid
// token whose subject no longer exists (deleted after issuance) fails
// the same way as an invalid token: token validity alone is not enough.
func (r *Resolver) Resolve(ctx context.Context, token string, now time.Time) (*models.User, error) {
	userID, err := r.tokens.Verify(token, now)
	if err != nil {
		return nil, ErrAuthentication
	}

	user, err := r.users.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAuthentication
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return user, nil
}
