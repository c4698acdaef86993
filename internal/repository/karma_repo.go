package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"playto.com/communityfeed/internal/model"
)

// RecipientScore is one aggregated row of the windowed leaderboard query.
type RecipientScore struct {
	UserID   uuid.UUID `gorm:"column:recipient_id"`
	Username string    `gorm:"column:username"`
	Points   int       `gorm:"column:points"`
}

type KarmaRepository interface {
	// TopRecipients sums points per recipient over events with
	// created_at >= since (inclusive), ordered by total descending and
	// recipient id ascending as the tie-break. Recipients with no
	// qualifying events are not returned at all.
	TopRecipients(ctx context.Context, since time.Time, limit int) ([]RecipientScore, error)
}

type karmaRepository struct {
	db *gorm.DB
}

func NewKarmaRepository(db *gorm.DB) KarmaRepository {
	return &karmaRepository{db: db}
}

func (r *karmaRepository) TopRecipients(ctx context.Context, since time.Time, limit int) ([]RecipientScore, error) {
	var scores []RecipientScore
	err := r.db.WithContext(ctx).
		Model(&model.KarmaEvent{}).
		Select("karma_events.recipient_id, users.username, SUM(karma_events.points) as points").
		Joins("JOIN users ON users.id = karma_events.recipient_id").
		Where("karma_events.created_at >= ?", since).
		Group("karma_events.recipient_id, users.username").
		Order("points DESC, karma_events.recipient_id ASC").
		Limit(limit).
		Scan(&scores).Error
	return scores, err
}
