package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"microboard/internal/config"
	"microboard/internal/models"
	"microboard/internal/repository"
)

type AuthService interface {
	CheckName(ctx context.Context, name string) error
	CheckEmail(ctx context.Context, email string) error
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	cost      int
	dummyHash []byte
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	// compared against when the email is unknown, so both failures cost one bcrypt run
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("dummy password"), cost)

	return &authService{
		userRepo:  userRepo,
		cost:      cost,
		dummyHash: dummyHash,
	}
}

// CheckName returns repository.ErrNameTaken when name belongs to a user.
func (s *authService) CheckName(ctx context.Context, name string) error {
	exists, err := s.userRepo.NameExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return repository.ErrNameTaken
	}
	return nil
}

// CheckEmail returns repository.ErrEmailTaken when email belongs to a user.
func (s *authService) CheckEmail(ctx context.Context, email string) error {
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return repository.ErrEmailTaken
	}
	return nil
}

// Register hashes the password and stores the user. Name and email
// uniqueness come back as repository.ErrNameTaken and repository.ErrEmailTaken.
func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
