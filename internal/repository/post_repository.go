package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"microboard/internal/models"
)

const (
	queryInsertPost = `
		INSERT INTO posts (content, user_id, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	queryPostByID        = `SELECT id, content, user_id, published_at, created_at, updated_at FROM posts WHERE id = $1`
	queryPostByIDAndUser = `SELECT id, content, user_id, published_at, created_at, updated_at FROM posts WHERE id = $1 AND user_id = $2`
	queryFeed            = `
		SELECT p.id, p.content, p.user_id, p.published_at, p.created_at, p.updated_at,
			u.name AS author_name,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.published_at DESC NULLS LAST, p.id DESC
		LIMIT $1
	`
	queryUpdatePostContent = `
		UPDATE posts SET
			content = $1,
			updated_at = $2
		WHERE id = $3 AND user_id = $4
	`
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	UserID  int64
	Content string
}

type UpdatePostRequest struct {
	PostID  int64
	UserID  int64
	Content string
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx, queryInsertPost,
		post.Content, post.UserID, post.PublishedAt, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		if pqErr, ok := pqError(err); ok && pqErr.Code == foreignKeyViolation {
			return fmt.Errorf("author %d: %w", post.UserID, ErrNotFound)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, queryPostByID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// GetByIDAndUser only finds the post when userID owns it.
func (r *PostRepositoryImpl) GetByIDAndUser(ctx context.Context, postID, userID int64) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, queryPostByIDAndUser, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %d of user %d: %w", postID, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// Feed returns the most recently published posts. Drafts sort last.
func (r *PostRepositoryImpl) Feed(ctx context.Context, limit int) ([]*models.FeedPost, error) {
	posts := []*models.FeedPost{}
	if err := r.db.SelectContext(ctx, &posts, queryFeed, limit); err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) UpdateContent(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, queryUpdatePostContent, post.Content, post.UpdatedAt, post.ID, post.UserID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %d of user %d: %w", post.ID, post.UserID, ErrNotFound)
	}

	return nil
}
