package models

// Vote marks that a user has voted on a post. The (user, post) pair is
// the identity: at most one vote per user per post.
type Vote struct {
	UserID int `json:"user_id"`
	PostID int `json:"post_id"`
}

// Vote directions accepted by the vote endpoint.
const (
	VoteDirRemove = 0
	VoteDirCast   = 1
)

// VoteInput is the request body for casting or removing a vote.
type VoteInput struct {
	PostID int `json:"post_id"`
	Dir    int `json:"dir"`
}
