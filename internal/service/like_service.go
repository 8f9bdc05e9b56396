package service

import (
	"context"
	"errors"

	"microboard/internal/models"
	"microboard/internal/repository"
)

type LikeService interface {
	Like(ctx context.Context, userID, postID int64) (*models.Like, error)
	Unlike(ctx context.Context, userID, postID int64) error
	HasLiked(ctx context.Context, userID, postID int64) (bool, error)
	Count(ctx context.Context, postID int64) (int, error)
}

type likeService struct {
	likeRepo repository.LikeRepository
}

func NewLikeService(likeRepo repository.LikeRepository) LikeService {
	return &likeService{likeRepo: likeRepo}
}

// Like is idempotent: liking twice returns the existing like.
func (s *likeService) Like(ctx context.Context, userID, postID int64) (*models.Like, error) {
	existing, err := s.likeRepo.GetByUserAndPost(ctx, userID, postID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	like, err := s.likeRepo.Create(ctx, userID, postID)
	if errors.Is(err, repository.ErrAlreadyLiked) {
		// lost a race with a concurrent like
		return s.likeRepo.GetByUserAndPost(ctx, userID, postID)
	}
	return like, err
}

func (s *likeService) Unlike(ctx context.Context, userID, postID int64) error {
	like, err := s.likeRepo.GetByUserAndPost(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	_, err = s.likeRepo.Delete(ctx, like.ID)
	return err
}

func (s *likeService) HasLiked(ctx context.Context, userID, postID int64) (bool, error) {
	_, err := s.likeRepo.GetByUserAndPost(ctx, userID, postID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *likeService) Count(ctx context.Context, postID int64) (int, error) {
	return s.likeRepo.CountByPost(ctx, postID)
}
