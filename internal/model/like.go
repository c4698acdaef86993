package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Likeable is a post or comment that can receive likes. The like engine and
// the like repository work exclusively through this contract so the two
// concrete flows share one code path.
type Likeable interface {
	LikeKind() KarmaSource
	LikeTargetID() uuid.UUID
	LikeRecipientID() uuid.UUID
	LikePoints() int
}

// PostLike records one user liking one post. The composite unique index is
// the ground truth for idempotence: concurrent duplicate likes race on it
// and exactly one insert wins.
type PostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_like_user_post" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_like_user_post;index" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *PostLike) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}

type CommentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_user_comment;index" json:"comment_id"`
	Comment   Comment   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *CommentLike) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
