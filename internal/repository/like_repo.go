package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"playto.com/communityfeed/internal/model"
)

type LikeRepository interface {
	// CreateWithKarma inserts the like and its karma event in one
	// transaction. A duplicate (user, target) pair surfaces as
	// gorm.ErrDuplicatedKey and leaves the store untouched.
	CreateWithKarma(ctx context.Context, actorID uuid.UUID, target model.Likeable) error
	// DeleteWithKarma removes the actor's like and its karma event in one
	// transaction. Returns false without error when no like exists.
	DeleteWithKarma(ctx context.Context, actorID uuid.UUID, target model.Likeable) (bool, error)
	CountLikes(ctx context.Context, target model.Likeable) (int64, error)
	IsLiked(ctx context.Context, userID uuid.UUID, target model.Likeable) (bool, error)
	// CountPostLikes / CountCommentLikes compute like counts for a whole
	// listing in one grouped query.
	CountPostLikes(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	CountCommentLikes(ctx context.Context, commentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// LikedPostIDs / LikedCommentIDs report which of the given targets the
	// user has liked, in one IN query.
	LikedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	LikedCommentIDs(ctx context.Context, userID uuid.UUID, commentIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) CreateWithKarma(ctx context.Context, actorID uuid.UUID, target model.Likeable) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event := model.KarmaEvent{
			RecipientID: target.LikeRecipientID(),
			ActorID:     actorID,
			SourceType:  target.LikeKind(),
			Points:      target.LikePoints(),
		}

		switch target.LikeKind() {
		case model.SourcePostLike:
			like := model.PostLike{UserID: actorID, PostID: target.LikeTargetID()}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			event.SourcePostLikeID = &like.ID
		case model.SourceCommentLike:
			like := model.CommentLike{UserID: actorID, CommentID: target.LikeTargetID()}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			event.SourceCommentLikeID = &like.ID
		}

		return tx.Create(&event).Error
	})
}

func (r *likeRepository) DeleteWithKarma(ctx context.Context, actorID uuid.UUID, target model.Likeable) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ledger entries never outlive their triggering like: delete the
		// karma event before the like row inside the same transaction.
		switch target.LikeKind() {
		case model.SourcePostLike:
			var likes []model.PostLike
			if err := tx.Where("user_id = ? AND post_id = ?", actorID, target.LikeTargetID()).
				Limit(1).Find(&likes).Error; err != nil {
				return err
			}
			if len(likes) == 0 {
				return nil
			}
			if err := tx.Where("source_post_like_id = ?", likes[0].ID).
				Delete(&model.KarmaEvent{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&likes[0]).Error; err != nil {
				return err
			}
		case model.SourceCommentLike:
			var likes []model.CommentLike
			if err := tx.Where("user_id = ? AND comment_id = ?", actorID, target.LikeTargetID()).
				Limit(1).Find(&likes).Error; err != nil {
				return err
			}
			if len(likes) == 0 {
				return nil
			}
			if err := tx.Where("source_comment_like_id = ?", likes[0].ID).
				Delete(&model.KarmaEvent{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&likes[0]).Error; err != nil {
				return err
			}
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *likeRepository) CountLikes(ctx context.Context, target model.Likeable) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx)
	switch target.LikeKind() {
	case model.SourcePostLike:
		query = query.Model(&model.PostLike{}).Where("post_id = ?", target.LikeTargetID())
	case model.SourceCommentLike:
		query = query.Model(&model.CommentLike{}).Where("comment_id = ?", target.LikeTargetID())
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *likeRepository) IsLiked(ctx context.Context, userID uuid.UUID, target model.Likeable) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx)
	switch target.LikeKind() {
	case model.SourcePostLike:
		query = query.Model(&model.PostLike{}).Where("user_id = ? AND post_id = ?", userID, target.LikeTargetID())
	case model.SourceCommentLike:
		query = query.Model(&model.CommentLike{}).Where("user_id = ? AND comment_id = ?", userID, target.LikeTargetID())
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) CountPostLikes(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countByTarget(ctx, &model.PostLike{}, "post_id", postIDs)
}

func (r *likeRepository) CountCommentLikes(ctx context.Context, commentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countByTarget(ctx, &model.CommentLike{}, "comment_id", commentIDs)
}

func (r *likeRepository) countByTarget(ctx context.Context, likeModel interface{}, column string, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	type result struct {
		TargetID uuid.UUID `gorm:"column:target_id"`
		Count    int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(likeModel).
		Select(column+" as target_id, count(*) as count").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.TargetID] = res.Count
	}
	return counts, nil
}

func (r *likeRepository) LikedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *likeRepository) LikedCommentIDs(ctx context.Context, userID uuid.UUID, commentIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(commentIDs))
	if len(commentIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
