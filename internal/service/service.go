package service

import (
	"errors"

	"microboard/internal/config"
	"microboard/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("post belongs to another user")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)

// FeedLimit is the number of posts shown on the home page.
const FeedLimit = 10

type Service struct {
	User   UserService
	Post   PostService
	Like   LikeService
	Auth   AuthService
	Tables TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		User:   NewUserService(rep.User),
		Post:   NewPostService(rep.Post),
		Like:   NewLikeService(rep.Like),
		Auth:   NewAuthService(rep.User, cfg),
		Tables: NewTablesService(rep.Tables),
	}
}
