package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"playto.com/communityfeed/internal/dto"
	"playto.com/communityfeed/internal/model"
	"playto.com/communityfeed/internal/repository"
	"playto.com/communityfeed/pkg/apperror"
)

type CommentService interface {
	// List returns comments flat, optionally filtered to one post, with
	// like_count / reply_count / is_liked_by_me computed in bulk.
	List(ctx context.Context, postID *uuid.UUID, viewerID *uuid.UUID) ([]dto.CommentResponse, error)
	Create(ctx context.Context, authorID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	// GetTree returns one post's comments as a nested reply forest.
	GetTree(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) ([]*dto.CommentNode, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	redisClient *redis.Client
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, likeRepo repository.LikeRepository, redisClient *redis.Client) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		redisClient: redisClient,
	}
}

func (s *commentService) List(ctx context.Context, postID *uuid.UUID, viewerID *uuid.UUID) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.FindAll(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, comments, viewerID)
}

func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return nil, apperror.New(400, "invalid post id", apperror.ErrInvalidInput)
	}

	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "post not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		pid, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, apperror.New(400, "invalid parent id", apperror.ErrInvalidInput)
		}
		parent, err := s.commentRepo.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(404, "parent comment not found", apperror.ErrNotFound)
			}
			return nil, err
		}
		// A reply must stay on its parent's post.
		if parent.PostID != postID {
			return nil, apperror.New(400, "parent comment belongs to a different post", apperror.ErrInvalidInput)
		}
		parentID = &pid
	}

	if allowed, err := checkCreateRateLimit(ctx, s.redisClient, authorID, "comment"); err != nil {
		return nil, err
	} else if !allowed {
		return nil, apperror.New(429, "you are commenting too fast", apperror.ErrRateLimitExceeded)
	}

	comment := &model.Comment{
		AuthorID: authorID,
		PostID:   postID,
		ParentID: parentID,
		Content:  sanitizeContent(req.Content),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload to pick up the author preload for the response.
	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := mapComment(created)
	return &resp, nil
}

func (s *commentService) GetTree(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) ([]*dto.CommentNode, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	annotated, err := s.annotate(ctx, comments, viewerID)
	if err != nil {
		return nil, err
	}

	nodes := make([]*dto.CommentNode, 0, len(annotated))
	for i := range annotated {
		nodes = append(nodes, &dto.CommentNode{CommentResponse: annotated[i]})
	}

	return BuildCommentTree(nodes), nil
}

// annotate computes the derived fields for a whole listing with one grouped
// query per concern, never per row.
func (s *commentService) annotate(ctx context.Context, comments []*model.Comment, viewerID *uuid.UUID) ([]dto.CommentResponse, error) {
	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	likeCounts, err := s.likeRepo.CountCommentLikes(ctx, ids)
	if err != nil {
		return nil, err
	}

	replyCounts, err := s.commentRepo.CountRepliesByParentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	likedByViewer := map[uuid.UUID]bool{}
	if viewerID != nil {
		likedByViewer, err = s.likeRepo.LikedCommentIDs(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp := mapComment(c)
		resp.LikeCount = likeCounts[c.ID]
		resp.ReplyCount = replyCounts[c.ID]
		resp.IsLikedByMe = likedByViewer[c.ID]
		responses = append(responses, resp)
	}
	return responses, nil
}

func mapComment(c *model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:             c.ID,
		AuthorID:       c.AuthorID,
		AuthorUsername: c.Author.Username,
		PostID:         c.PostID,
		ParentID:       c.ParentID,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}
