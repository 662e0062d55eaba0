package repository

import (
	"context"
	"errors"

	"github.com/Dan9191/blog-service/internal/models"
)

// Store errors recognized by callers via errors.Is. Anything else is an
// opaque store failure.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateVote  = errors.New("vote already exists")
)

// Store is the data-access contract for users, posts and votes. The
// implementation owns transactional boundaries and cascade deletes:
// deleting a user removes their posts and votes, deleting a post
// removes its votes.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id int) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUserEmails(ctx context.Context) ([]string, error)
	DeleteUser(ctx context.Context, id int) error

	CreatePost(ctx context.Context, post *models.Post) error
	FindPostByID(ctx context.Context, id int) (*models.Post, error)
	FindPostWithVotes(ctx context.Context, id int) (*models.PostWithVotes, error)
	ListPostsWithVotes(ctx context.Context, search string, limit, offset int) ([]models.PostWithVotes, error)
	ListTopPosts(ctx context.Context, limit int) ([]models.PostWithVotes, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id int) error

	CastVote(ctx context.Context, vote models.Vote) error
	RemoveVote(ctx context.Context, vote models.Vote) error
}
