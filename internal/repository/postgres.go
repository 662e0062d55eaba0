package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/lib/pq"
)

// Postgres-specific SQLSTATEs for constraint violations.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Postgres implements Store on database/sql with the lib/pq driver.
type Postgres struct {
	db *sql.DB
}

// NewPostgres initializes a new Postgres-backed store
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// CreateUser creates a new user in the database
func (r *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByID retrieves a user by primary key
func (r *Postgres) FindUserByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email
func (r *Postgres) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUserEmails returns the email address of every registered user
func (r *Postgres) ListUserEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list user emails: %w", err)
	}
	return emails, nil
}

// DeleteUser deletes a user by id. Posts and votes referencing the user
// are removed by the schema's ON DELETE CASCADE.
func (r *Postgres) DeleteUser(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffected(res)
}

// CreatePost creates a new post in the database
func (r *Postgres) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, published, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Published, post.OwnerID).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// FindPostByID retrieves a post by primary key without vote counts
func (r *Postgres) FindPostByID(ctx context.Context, id int) (*models.Post, error) {
	post := &models.Post{}
	query := `
		SELECT id, title, content, published, created_at, owner_id
		FROM posts
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.Published, &post.CreatedAt, &post.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// Vote counts come from a left outer join so posts with zero votes
// still appear, with a count of 0.
const postWithVotesQuery = `
	SELECT p.id, p.title, p.content, p.published, p.created_at, p.owner_id,
	       COUNT(v.post_id) AS votes
	FROM posts p
	LEFT JOIN votes v ON v.post_id = p.id`

// FindPostWithVotes retrieves a post together with its vote count
func (r *Postgres) FindPostWithVotes(ctx context.Context, id int) (*models.PostWithVotes, error) {
	query := postWithVotesQuery + `
	WHERE p.id = $1
	GROUP BY p.id`
	out := &models.PostWithVotes{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&out.Post.ID, &out.Post.Title, &out.Post.Content, &out.Post.Published,
		&out.Post.CreatedAt, &out.Post.OwnerID, &out.Votes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return out, nil
}

// ListPostsWithVotes returns posts with their vote counts, filtered by
// a title substring and paginated with limit/offset.
func (r *Postgres) ListPostsWithVotes(ctx context.Context, search string, limit, offset int) ([]models.PostWithVotes, error) {
	query := postWithVotesQuery + `
	WHERE p.title LIKE '%' || $1 || '%'
	GROUP BY p.id
	ORDER BY p.id
	LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()
	return scanPostsWithVotes(rows)
}

// ListTopPosts returns the most-voted posts, highest first
func (r *Postgres) ListTopPosts(ctx context.Context, limit int) ([]models.PostWithVotes, error) {
	query := postWithVotesQuery + `
	GROUP BY p.id
	ORDER BY votes DESC, p.id
	LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top posts: %w", err)
	}
	defer rows.Close()
	return scanPostsWithVotes(rows)
}

// UpdatePost replaces the mutable fields of a post by id
func (r *Postgres) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2, published = $3
		WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.Published, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return checkAffected(res)
}

// DeletePost deletes a post by id. Votes on the post are removed by
// the schema's ON DELETE CASCADE.
func (r *Postgres) DeletePost(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return checkAffected(res)
}

// CastVote records a vote inside a single transaction: the referenced
// post must exist at insert time, and a duplicate (user, post) pair is
// rejected. A failure on any step leaves no partial mutation.
func (r *Postgres) CastVote(ctx context.Context, vote models.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = $1`, vote.PostID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check post: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO votes (user_id, post_id) VALUES ($1, $2)`,
		vote.UserID, vote.PostID)
	if isUniqueViolation(err) {
		return ErrDuplicateVote
	}
	// The post (or the voting user) can be deleted between the
	// existence check and the insert; the FK violation means the
	// referenced row is gone.
	if isForeignKeyViolation(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// RemoveVote deletes the caller's vote on a post
func (r *Postgres) RemoveVote(ctx context.Context, vote models.Vote) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM votes WHERE user_id = $1 AND post_id = $2`,
		vote.UserID, vote.PostID)
	if err != nil {
		return fmt.Errorf("failed to remove vote: %w", err)
	}
	return checkAffected(res)
}

func scanPostsWithVotes(rows *sql.Rows) ([]models.PostWithVotes, error) {
	var posts []models.PostWithVotes
	for rows.Next() {
		var p models.PostWithVotes
		if err := rows.Scan(
			&p.Post.ID, &p.Post.Title, &p.Post.Content, &p.Post.Published,
			&p.Post.CreatedAt, &p.Post.OwnerID, &p.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
