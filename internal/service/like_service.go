package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"playto.com/communityfeed/internal/dto"
	"playto.com/communityfeed/internal/model"
	"playto.com/communityfeed/internal/repository"
	"playto.com/communityfeed/pkg/apperror"
)

type LikeService interface {
	LikePost(ctx context.Context, actorID uuid.UUID, postID uuid.UUID) (*dto.LikeResult, error)
	UnlikePost(ctx context.Context, actorID uuid.UUID, postID uuid.UUID) (*dto.UnlikeResult, error)
	LikeComment(ctx context.Context, actorID uuid.UUID, commentID uuid.UUID) (*dto.LikeResult, error)
	UnlikeComment(ctx context.Context, actorID uuid.UUID, commentID uuid.UUID) (*dto.UnlikeResult, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	leaderboard LeaderboardService
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository, commentRepo repository.CommentRepository, leaderboard LeaderboardService) LikeService {
	return &likeService{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		leaderboard: leaderboard,
	}
}

func (s *likeService) LikePost(ctx context.Context, actorID uuid.UUID, postID uuid.UUID) (*dto.LikeResult, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.like(ctx, actorID, post)
}

func (s *likeService) UnlikePost(ctx context.Context, actorID uuid.UUID, postID uuid.UUID) (*dto.UnlikeResult, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.unlike(ctx, actorID, post)
}

func (s *likeService) LikeComment(ctx context.Context, actorID uuid.UUID, commentID uuid.UUID) (*dto.LikeResult, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return s.like(ctx, actorID, comment)
}

func (s *likeService) UnlikeComment(ctx context.Context, actorID uuid.UUID, commentID uuid.UUID) (*dto.UnlikeResult, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return s.unlike(ctx, actorID, comment)
}

// like is the shared toggle-on flow for both target kinds. Duplicate
// inserts, including ones that lose a concurrent race on the unique index,
// degrade to Created=false without erroring the caller and without a second
// karma event.
func (s *likeService) like(ctx context.Context, actorID uuid.UUID, target model.Likeable) (*dto.LikeResult, error) {
	if target.LikeRecipientID() == actorID {
		return nil, apperror.ErrSelfLike
	}

	created := true
	if err := s.likeRepo.CreateWithKarma(ctx, actorID, target); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		created = false
	}

	count, err := s.likeRepo.CountLikes(ctx, target)
	if err != nil {
		return nil, err
	}

	if created {
		s.invalidateLeaderboard(ctx)
	}

	return &dto.LikeResult{Liked: true, Created: created, LikeCount: count}, nil
}

func (s *likeService) unlike(ctx context.Context, actorID uuid.UUID, target model.Likeable) (*dto.UnlikeResult, error) {
	deleted, err := s.likeRepo.DeleteWithKarma(ctx, actorID, target)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountLikes(ctx, target)
	if err != nil {
		return nil, err
	}

	if deleted {
		s.invalidateLeaderboard(ctx)
	}

	return &dto.UnlikeResult{Liked: false, Deleted: deleted, LikeCount: count}, nil
}

func (s *likeService) findPost(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *likeService) findComment(ctx context.Context, commentID uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *likeService) invalidateLeaderboard(ctx context.Context) {
	if s.leaderboard != nil {
		s.leaderboard.InvalidateCache(ctx)
	}
}
