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
	queryNameExists  = `SELECT EXISTS (SELECT 1 FROM users WHERE name = $1)`
	queryEmailExists = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	queryInsertUser  = `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	queryUserByID    = `SELECT id, name, email, password, created_at, updated_at FROM users WHERE id = $1`
	queryUserByEmail = `SELECT id, name, email, password, created_at, updated_at FROM users WHERE email = $1`
)

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser checks name and email uniqueness and inserts the row in one
// transaction. The unique constraints catch registrations racing past the
// checks; their violations map to the same errors.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, queryNameExists, user.Name); err != nil {
		return fmt.Errorf("failed to check user name: %w", err)
	}
	if exists {
		return ErrNameTaken
	}

	if err := tx.GetContext(ctx, &exists, queryEmailExists, user.Email); err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return ErrEmailTaken
	}

	err = tx.QueryRowxContext(ctx, queryInsertUser, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translateUserError(err)
	}

	if err := tx.Commit(); err != nil {
		return translateUserError(err)
	}

	return nil
}

func translateUserError(err error) error {
	if pqErr, ok := pqError(err); ok && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case "users_name_key":
			return ErrNameTaken
		case "users_email_key":
			return ErrEmailTaken
		}
	}
	return fmt.Errorf("failed to create user: %w", err)
}

func (r *userRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, queryNameExists, name); err != nil {
		return false, fmt.Errorf("failed to check user name: %w", err)
	}
	return exists, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, queryEmailExists, email); err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	err := r.db.GetContext(ctx, &user, queryUserByID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.db.GetContext(ctx, &user, queryUserByEmail, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}
