package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KarmaSource string

const (
	SourcePostLike    KarmaSource = "post_like"
	SourceCommentLike KarmaSource = "comment_like"

	PointsPostLike    = 5
	PointsCommentLike = 1
)

// KarmaEvent is one append-only ledger entry. An event is created together
// with its source like in the same transaction and deleted only when that
// like is deleted; it is never updated.
type KarmaEvent struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID   `gorm:"type:uuid;not null;index:idx_karma_recipient_created,priority:1" json:"recipient_id"`
	Recipient   User        `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	ActorID     uuid.UUID   `gorm:"type:uuid;not null" json:"actor_id"`
	Actor       User        `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"-"`
	SourceType  KarmaSource `gorm:"size:20;not null" json:"source_type"`
	Points      int         `gorm:"not null;check:points > 0" json:"points"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;index:idx_karma_recipient_created,priority:2;index" json:"created_at"`

	SourcePostLikeID    *uuid.UUID   `gorm:"type:uuid;uniqueIndex" json:"source_post_like_id,omitempty"`
	SourcePostLike      *PostLike    `gorm:"foreignKey:SourcePostLikeID;constraint:OnDelete:CASCADE" json:"-"`
	SourceCommentLikeID *uuid.UUID   `gorm:"type:uuid;uniqueIndex" json:"source_comment_like_id,omitempty"`
	SourceCommentLike   *CommentLike `gorm:"foreignKey:SourceCommentLikeID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate guards the ledger invariants. A violation here is a
// programming error: no public API path can produce one.
func (e *KarmaEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		if e.ID, err = uuid.NewV7(); err != nil {
			return err
		}
	}
	if e.Points <= 0 {
		return fmt.Errorf("karma event points must be positive, got %d", e.Points)
	}
	switch e.SourceType {
	case SourcePostLike:
		if e.SourcePostLikeID == nil || e.SourceCommentLikeID != nil {
			return fmt.Errorf("karma event source reference does not match source type %q", e.SourceType)
		}
	case SourceCommentLike:
		if e.SourceCommentLikeID == nil || e.SourcePostLikeID != nil {
			return fmt.Errorf("karma event source reference does not match source type %q", e.SourceType)
		}
	default:
		return fmt.Errorf("unknown karma source type %q", e.SourceType)
	}
	return nil
}
