package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"microboard/internal/models"
)

const (
	queryInsertLike = `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		RETURNING id, user_id, post_id, created_at, updated_at
	`
	queryDeleteLike        = `DELETE FROM likes WHERE id = $1`
	queryLikeByUserAndPost = `SELECT id, user_id, post_id, created_at, updated_at FROM likes WHERE user_id = $1 AND post_id = $2`
	queryCountLikesByPost  = `SELECT COUNT(*) FROM likes WHERE post_id = $1`
)

type LikeRepositoryImpl struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) *LikeRepositoryImpl {
	return &LikeRepositoryImpl{db: db}
}

func (r *LikeRepositoryImpl) Create(ctx context.Context, userID, postID int64) (*models.Like, error) {
	var like models.Like
	err := r.db.GetContext(ctx, &like, queryInsertLike, userID, postID)
	if err != nil {
		if pqErr, ok := pqError(err); ok {
			switch pqErr.Code {
			case uniqueViolation:
				return nil, ErrAlreadyLiked
			case foreignKeyViolation:
				return nil, fmt.Errorf("user %d or post %d: %w", userID, postID, ErrNotFound)
			}
		}
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	return &like, nil
}

// Delete returns the number of removed rows; zero is not an error.
func (r *LikeRepositoryImpl) Delete(ctx context.Context, likeID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, queryDeleteLike, likeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return rowsAffected, nil
}

func (r *LikeRepositoryImpl) GetByUserAndPost(ctx context.Context, userID, postID int64) (*models.Like, error) {
	var like models.Like
	err := r.db.GetContext(ctx, &like, queryLikeByUserAndPost, userID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("like of post %d by user %d: %w", postID, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	return &like, nil
}

func (r *LikeRepositoryImpl) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, queryCountLikesByPost, postID); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}
