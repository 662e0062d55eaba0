package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/Dan9191/blog-service/internal/repository"
)

// brokenStore simulates a store outage: every user lookup fails with
// the given error. Other Store methods are never reached.
type brokenStore struct {
	repository.Store
	err error
}

func (b *brokenStore) FindUserByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, b.err
}

// fakeMailer records sent mail and can be told to fail.
type fakeMailer struct {
	mu       sync.Mutex
	welcomes []string
	digests  map[string][]models.PostWithVotes
	fail     bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{digests: make(map[string][]models.PostWithVotes)}
}

func (f *fakeMailer) SendWelcome(to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeMailer) SendDigest(to string, posts []models.PostWithVotes) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.digests[to] = posts
	return nil
}
