package models

import "time"

// Post represents a blog post owned by a user
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   int       `json:"owner_id"`
}

// PostWithVotes is the read model for post queries: the post plus the
// number of votes currently referencing it. Not stored; computed per query.
type PostWithVotes struct {
	Post  Post `json:"post"`
	Votes int  `json:"votes"`
}

// PostInput carries the client-supplied fields for creating or updating
// a post. The owner is never taken from the client.
type PostInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published,omitempty"`
}
