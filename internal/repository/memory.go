package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/blog-service/internal/models"
)

// Memory implements Store with in-process maps. It mirrors the
// Postgres semantics, including cascade deletes, and is used by tests
// and for running the service without a database.
type Memory struct {
	mu         sync.Mutex
	users      map[int]models.User
	posts      map[int]models.Post
	votes      map[models.Vote]struct{}
	nextUserID int
	nextPostID int
}

// NewMemory initializes an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int]models.User),
		posts:      make(map[int]models.Post),
		votes:      make(map[models.Vote]struct{}),
		nextUserID: 1,
		nextPostID: 1,
	}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) FindUserByID(_ context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUserEmails(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	emails := make([]string, 0, len(ids))
	for _, id := range ids {
		emails = append(emails, m.users[id].Email)
	}
	return emails, nil
}

func (m *Memory) DeleteUser(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)

	// Cascade: the user's posts go, votes on those posts go, and the
	// user's own votes on other posts go.
	for postID, post := range m.posts {
		if post.OwnerID == id {
			delete(m.posts, postID)
			m.deleteVotesForPost(postID)
		}
	}
	for vote := range m.votes {
		if vote.UserID == id {
			delete(m.votes, vote)
		}
	}
	return nil
}

func (m *Memory) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[post.OwnerID]; !ok {
		return ErrNotFound
	}
	post.ID = m.nextPostID
	m.nextPostID++
	post.CreatedAt = time.Now()
	m.posts[post.ID] = *post
	return nil
}

func (m *Memory) FindPostByID(_ context.Context, id int) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (m *Memory) FindPostWithVotes(_ context.Context, id int) (*models.PostWithVotes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &models.PostWithVotes{Post: post, Votes: m.countVotes(id)}, nil
}

func (m *Memory) ListPostsWithVotes(_ context.Context, search string, limit, offset int) ([]models.PostWithVotes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []models.PostWithVotes
	for _, post := range m.posts {
		if !strings.Contains(post.Title, search) {
			continue
		}
		all = append(all, models.PostWithVotes{Post: post, Votes: m.countVotes(post.ID)})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Post.ID < all[j].Post.ID })
	return paginate(all, limit, offset), nil
}

func (m *Memory) ListTopPosts(_ context.Context, limit int) ([]models.PostWithVotes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []models.PostWithVotes
	for _, post := range m.posts {
		all = append(all, models.PostWithVotes{Post: post, Votes: m.countVotes(post.ID)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Votes != all[j].Votes {
			return all[i].Votes > all[j].Votes
		}
		return all[i].Post.ID < all[j].Post.ID
	})
	return paginate(all, limit, 0), nil
}

func (m *Memory) UpdatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[post.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Title = post.Title
	existing.Content = post.Content
	existing.Published = post.Published
	m.posts[post.ID] = existing
	return nil
}

func (m *Memory) DeletePost(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	m.deleteVotesForPost(id)
	return nil
}

func (m *Memory) CastVote(_ context.Context, vote models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[vote.PostID]; !ok {
		return ErrNotFound
	}
	if _, ok := m.votes[vote]; ok {
		return ErrDuplicateVote
	}
	m.votes[vote] = struct{}{}
	return nil
}

func (m *Memory) RemoveVote(_ context.Context, vote models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.votes[vote]; !ok {
		return ErrNotFound
	}
	delete(m.votes, vote)
	return nil
}

func (m *Memory) countVotes(postID int) int {
	n := 0
	for vote := range m.votes {
		if vote.PostID == postID {
			n++
		}
	}
	return n
}

func (m *Memory) deleteVotesForPost(postID int) {
	for vote := range m.votes {
		if vote.PostID == postID {
			delete(m.votes, vote)
		}
	}
}

func paginate(posts []models.PostWithVotes, limit, offset int) []models.PostWithVotes {
	if offset >= len(posts) {
		return nil
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}
