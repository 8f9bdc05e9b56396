package models

import (
	"time"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Post is a board message. A nil PublishedAt marks a draft; posts created
// through the web flow are always published.
type Post struct {
	ID          int64      `json:"id" db:"id"`
	Content     string     `json:"content" db:"content"`
	UserID      int64      `json:"userId" db:"user_id"`
	PublishedAt *time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// FeedPost is a post as shown on the home page.
type FeedPost struct {
	Post
	AuthorName string `json:"authorName" db:"author_name"`
	LikeCount  int    `json:"likeCount" db:"like_count"`
}

type Like struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
