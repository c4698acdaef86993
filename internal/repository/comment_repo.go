package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"playto.com/communityfeed/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	// FindByPostID returns the post's comments flat, created_at ascending.
	// The tree builder relies on that ordering for sibling order.
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error)
	FindAll(ctx context.Context, postID *uuid.UUID) ([]*model.Comment, error)
	// CountRepliesByParentIDs computes direct-children counts for a set of
	// comments in one grouped query.
	CountRepliesByParentIDs(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) FindAll(ctx context.Context, postID *uuid.UUID) ([]*model.Comment, error) {
	query := r.db.WithContext(ctx).Preload("Author")
	if postID != nil {
		query = query.Where("post_id = ?", *postID)
	}

	var comments []*model.Comment
	err := query.Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountRepliesByParentIDs(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	type result struct {
		ParentID uuid.UUID
		Count    int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Select("parent_id, count(*) as count").
		Where("parent_id IN ?", parentIDs).
		Group("parent_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.ParentID] = res.Count
	}
	return counts, nil
}
