package repository

import (
	"context"
	"testing"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *Memory, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "digest"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func seedPost(t *testing.T, store *Memory, ownerID int, title string) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Content: "c", Published: true, OwnerID: ownerID}
	require.NoError(t, store.CreatePost(context.Background(), post))
	return post
}

func TestMemoryUserUniqueEmail(t *testing.T) {
	store := NewMemory()
	seedUser(t, store, "a@x.com")

	err := store.CreateUser(context.Background(), &models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryVoteConstraints(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	user := seedUser(t, store, "a@x.com")
	post := seedPost(t, store, user.ID, "t")

	vote := models.Vote{UserID: user.ID, PostID: post.ID}
	require.NoError(t, store.CastVote(ctx, vote))
	assert.ErrorIs(t, store.CastVote(ctx, vote), ErrDuplicateVote)

	missing := models.Vote{UserID: user.ID, PostID: 999}
	assert.ErrorIs(t, store.CastVote(ctx, missing), ErrNotFound)

	require.NoError(t, store.RemoveVote(ctx, vote))
	assert.ErrorIs(t, store.RemoveVote(ctx, vote), ErrNotFound)
}

func TestMemoryDeleteUserCascades(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	alice := seedUser(t, store, "alice@x.com")
	bob := seedUser(t, store, "bob@x.com")

	alicePost := seedPost(t, store, alice.ID, "alice post")
	bobPost := seedPost(t, store, bob.ID, "bob post")

	require.NoError(t, store.CastVote(ctx, models.Vote{UserID: bob.ID, PostID: alicePost.ID}))
	require.NoError(t, store.CastVote(ctx, models.Vote{UserID: alice.ID, PostID: bobPost.ID}))

	require.NoError(t, store.DeleteUser(ctx, alice.ID))

	_, err := store.FindUserByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.FindPostByID(ctx, alicePost.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Bob's vote on Alice's post and Alice's vote on Bob's post are gone.
	withVotes, err := store.FindPostWithVotes(ctx, bobPost.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, withVotes.Votes)
	assert.ErrorIs(t, store.RemoveVote(ctx, models.Vote{UserID: bob.ID, PostID: alicePost.ID}), ErrNotFound)
}

func TestMemoryListOrderingAndCounts(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	owner := seedUser(t, store, "owner@x.com")

	first := seedPost(t, store, owner.ID, "first")
	second := seedPost(t, store, owner.ID, "second")

	for _, email := range []string{"v1@x.com", "v2@x.com", "v3@x.com"} {
		voter := seedUser(t, store, email)
		require.NoError(t, store.CastVote(ctx, models.Vote{UserID: voter.ID, PostID: second.ID}))
	}

	posts, err := store.ListPostsWithVotes(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].Post.ID)
	assert.Equal(t, 0, posts[0].Votes)
	assert.Equal(t, 3, posts[1].Votes)

	top, err := store.ListTopPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, second.ID, top[0].Post.ID)

	emails, err := store.ListUserEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@x.com", "v1@x.com", "v2@x.com", "v3@x.com"}, emails)
}

func TestMemoryUpdatePost(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	owner := seedUser(t, store, "owner@x.com")
	post := seedPost(t, store, owner.ID, "before")

	post.Title = "after"
	post.Published = false
	require.NoError(t, store.UpdatePost(ctx, post))

	got, err := store.FindPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.False(t, got.Published)

	assert.ErrorIs(t, store.UpdatePost(ctx, &models.Post{ID: 999}), ErrNotFound)
	assert.ErrorIs(t, store.DeletePost(ctx, 999), ErrNotFound)
}
