package dto

import "github.com/google/uuid"

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type PostResponse struct {
	ID             uuid.UUID `json:"id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	LikeCount      int64     `json:"like_count"`
	IsLikedByMe    bool      `json:"is_liked_by_me"`
	CreatedAt      string    `json:"created_at"`
}

type PostSearchHit struct {
	ID             string `json:"id"`
	AuthorUsername string `json:"author_username"`
	Content        string `json:"content"`
	CreatedAt      int64  `json:"created_at"`
}
