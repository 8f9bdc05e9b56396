package service

import (
	"context"
	"time"

	"microboard/internal/models"
	"microboard/internal/repository"
)

type PostService interface {
	Feed(ctx context.Context) ([]*models.FeedPost, error)
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	GetForEdit(ctx context.Context, postID, userID int64) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) error
}

type postService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

func (p *postService) Feed(ctx context.Context) ([]*models.FeedPost, error) {
	return p.postRepo.Feed(ctx, FeedLimit)
}

// CreatePost publishes immediately; drafts are never created from the web.
func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	publishedAt := p.now()

	post := &models.Post{
		UserID:      req.UserID,
		Content:     req.Content,
		PublishedAt: &publishedAt,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetForEdit(ctx context.Context, postID, userID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByIDAndUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	// the query already filters on the owner
	if post.UserID != userID {
		return nil, ErrForbidden
	}

	return post, nil
}

// UpdatePost re-checks ownership against the stored row; the post id comes
// from the client.
func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) error {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return err
	}

	if post.UserID != req.UserID {
		return ErrForbidden
	}

	post.Content = req.Content

	return p.postRepo.UpdateContent(ctx, post)
}
