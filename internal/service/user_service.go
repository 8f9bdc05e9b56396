package service

import (
	"context"

	"microboard/internal/models"
	"microboard/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
