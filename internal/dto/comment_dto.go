package dto

import "github.com/google/uuid"

type CreateCommentRequest struct {
	PostID   string `json:"post_id" binding:"required,uuid"`
	ParentID string `json:"parent_id" binding:"omitempty,uuid"` // optional, for nested replies
	Content  string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID             uuid.UUID  `json:"id"`
	AuthorID       uuid.UUID  `json:"author_id"`
	AuthorUsername string     `json:"author_username"`
	PostID         uuid.UUID  `json:"post_id"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
	Content        string     `json:"content"`
	LikeCount      int64      `json:"like_count"`
	ReplyCount     int64      `json:"reply_count"`
	IsLikedByMe    bool       `json:"is_liked_by_me"`
	CreatedAt      string     `json:"created_at"`
}

// CommentNode is one node of the nested reply tree. Replies hold the direct
// children in chronological order.
type CommentNode struct {
	CommentResponse
	Replies []*CommentNode `json:"replies"`
}
