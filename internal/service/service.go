package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/blog-service/internal/auth"
	"github.com/Dan9191/blog-service/internal/models"
	"github.com/Dan9191/blog-service/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
	digestPostCount  = 5
)

// Mailer sends notification emails. A nil Mailer disables mail.
type Mailer interface {
	SendWelcome(to string) error
	SendDigest(to string, posts []models.PostWithVotes) error
}

// Service handles business logic
type Service struct {
	store  repository.Store
	tokens *auth.TokenService
	mailer Mailer
	log    *logrus.Logger
}

// NewService initializes a new service
func NewService(store repository.Store, tokens *auth.TokenService, mailer Mailer, log *logrus.Logger) *Service {
	return &Service{store: store, tokens: tokens, mailer: mailer, log: log}
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Welcome mail is best effort; registration succeeded regardless.
	if s.mailer != nil {
		if err := s.mailer.SendWelcome(user.Email); err != nil {
			s.log.Warnf("Failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a signed bearer token. An
// unknown email and a wrong password produce the identical error.
func (s *Service) Login(ctx context.Context, email, password string, now time.Time) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, now)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, nil
}

// GetUser returns a user by id
func (s *Service) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.store.FindUserByID(ctx, id)
}

// DeleteUser deletes a user account. Only the user themselves may do
// it; the store cascades the delete to their posts and votes.
func (s *Service) DeleteUser(ctx context.Context, identity *models.User, id int) error {
	if err := auth.AuthorizeUser(identity, id); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Infof("User deleted: %d", id)
	return nil
}

// CreatePost creates a post owned by the authenticated user. The owner
// is always the caller, never taken from the request.
func (s *Service) CreatePost(ctx context.Context, identity *models.User, input models.PostInput) (*models.Post, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	post := &models.Post{
		Title:     input.Title,
		Content:   input.Content,
		Published: true,
		OwnerID:   identity.ID,
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Infof("Post %d created by user %d", post.ID, identity.ID)
	return post, nil
}

// GetPost returns a post with its current vote count
func (s *Service) GetPost(ctx context.Context, id int) (*models.PostWithVotes, error) {
	return s.store.FindPostWithVotes(ctx, id)
}

// ListPosts returns posts with vote counts, filtered by a title
// substring and paginated. Zero or negative limits fall back to the
// default page size.
func (s *Service) ListPosts(ctx context.Context, search string, limit, offset int) ([]models.PostWithVotes, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListPostsWithVotes(ctx, search, limit, offset)
}

// UpdatePost replaces a post's title, content and published flag.
// Only the owner may update.
func (s *Service) UpdatePost(ctx context.Context, identity *models.User, id int, input models.PostInput) (*models.Post, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizePost(identity, post); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Content = input.Content
	if input.Published != nil {
		post.Published = *input.Published
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Infof("Post %d updated by user %d", post.ID, identity.ID)
	return post, nil
}

// DeletePost deletes a post. Only the owner may delete; votes on the
// post are cascade-deleted by the store.
func (s *Service) DeletePost(ctx context.Context, identity *models.User, id int) error {
	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.AuthorizePost(identity, post); err != nil {
		return err
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}

	s.log.Infof("Post %d deleted by user %d", id, identity.ID)
	return nil
}

// Vote casts or removes the caller's vote on a post depending on the
// requested direction.
func (s *Service) Vote(ctx context.Context, identity *models.User, input models.VoteInput) error {
	vote := models.Vote{UserID: identity.ID, PostID: input.PostID}

	switch input.Dir {
	case models.VoteDirCast:
		if err := s.store.CastVote(ctx, vote); err != nil {
			return err
		}
		s.log.Infof("User %d voted on post %d", identity.ID, input.PostID)
	case models.VoteDirRemove:
		if err := s.store.RemoveVote(ctx, vote); err != nil {
			return err
		}
		s.log.Infof("User %d removed vote on post %d", identity.ID, input.PostID)
	default:
		return fmt.Errorf("%w: dir must be 0 or 1", ErrValidation)
	}
	return nil
}

// SendDigest mails the current top-voted posts to every registered
// user. Invoked on a schedule from the main process.
func (s *Service) SendDigest(ctx context.Context) error {
	if s.mailer == nil {
		return nil
	}

	posts, err := s.store.ListTopPosts(ctx, digestPostCount)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		s.log.Info("Digest skipped: no posts")
		return nil
	}

	emails, err := s.store.ListUserEmails(ctx)
	if err != nil {
		return err
	}

	sent := 0
	for _, addr := range emails {
		if err := s.mailer.SendDigest(addr, posts); err != nil {
			s.log.Warnf("Failed to send digest to %s: %v", addr, err)
			continue
		}
		sent++
	}

	s.log.Infof("Digest sent to %d of %d users", sent, len(emails))
	return nil
}
