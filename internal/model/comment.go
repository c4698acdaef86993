package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Author    User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	PostID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	Post      Post       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent    *Comment   `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"parent,omitempty"` // nested replies
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

func (c *Comment) LikeKind() KarmaSource      { return SourceCommentLike }
func (c *Comment) LikeTargetID() uuid.UUID    { return c.ID }
func (c *Comment) LikeRecipientID() uuid.UUID { return c.AuthorID }
func (c *Comment) LikePoints() int            { return PointsCommentLike }
