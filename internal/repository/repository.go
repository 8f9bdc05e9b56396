package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"microboard/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrNameTaken    = errors.New("name is already taken")
	ErrEmailTaken   = errors.New("email is already taken")
	ErrAlreadyLiked = errors.New("post is already liked by this user")
)

const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	NameExists(ctx context.Context, name string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	GetByIDAndUser(ctx context.Context, postID, userID int64) (*models.Post, error)
	Feed(ctx context.Context, limit int) ([]*models.FeedPost, error)
	UpdateContent(ctx context.Context, post *models.Post) error
}

type LikeRepository interface {
	Create(ctx context.Context, userID, postID int64) (*models.Like, error)
	Delete(ctx context.Context, likeID int64) (int64, error)
	GetByUserAndPost(ctx context.Context, userID, postID int64) (*models.Like, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
}

type TablesRepository interface {
	CountTables(ctx context.Context) (int, error)
}

type Repository struct {
	User   UserRepository
	Post   PostRepository
	Like   LikeRepository
	Tables TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Post:   NewPostRepository(db),
		Like:   NewLikeRepository(db),
		Tables: NewTablesRepository(db),
	}
}

// pqError returns the Postgres error wrapped in err, if any.
func pqError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}
