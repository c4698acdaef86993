package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"playto.com/communityfeed/internal/dto"
	"playto.com/communityfeed/internal/model"
	"playto.com/communityfeed/internal/repository"
	"playto.com/communityfeed/pkg/apperror"
)

type PostService interface {
	// List returns the feed newest-first with like_count and is_liked_by_me
	// computed in bulk for the whole page.
	List(ctx context.Context, viewerID *uuid.UUID) ([]dto.PostResponse, error)
	Create(ctx context.Context, authorID uuid.UUID, req dto.CreatePostRequest) (*dto.PostResponse, error)
	// GetByID fetches a single post and computes its derived fields live.
	GetByID(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*dto.PostResponse, error)
	Search(ctx context.Context, query string) ([]dto.PostSearchHit, error)
}

type postService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	search      SearchService
	redisClient *redis.Client
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository, search SearchService, redisClient *redis.Client) PostService {
	return &postService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		search:      search,
		redisClient: redisClient,
	}
}

func (s *postService) List(ctx context.Context, viewerID *uuid.UUID) ([]dto.PostResponse, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	likeCounts, err := s.likeRepo.CountPostLikes(ctx, ids)
	if err != nil {
		return nil, err
	}

	likedByViewer := map[uuid.UUID]bool{}
	if viewerID != nil {
		likedByViewer, err = s.likeRepo.LikedPostIDs(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		resp := mapPost(p)
		resp.LikeCount = likeCounts[p.ID]
		resp.IsLikedByMe = likedByViewer[p.ID]
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	if allowed, err := checkCreateRateLimit(ctx, s.redisClient, authorID, "post"); err != nil {
		return nil, err
	} else if !allowed {
		return nil, apperror.New(429, "you are posting too fast", apperror.ErrRateLimitExceeded)
	}

	post := &model.Post{
		AuthorID: authorID,
		Content:  sanitizeContent(req.Content),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		go func(p model.Post) {
			if err := s.search.IndexPost(&p); err != nil {
				log.Printf("Failed to index post %s: %v", p.ID, err)
			}
		}(*created)
	}

	resp := mapPost(created)
	return &resp, nil
}

func (s *postService) GetByID(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	resp := mapPost(post)
	if resp.LikeCount, err = s.likeRepo.CountLikes(ctx, post); err != nil {
		return nil, err
	}
	if viewerID != nil {
		if resp.IsLikedByMe, err = s.likeRepo.IsLiked(ctx, *viewerID, post); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

func (s *postService) Search(ctx context.Context, query string) ([]dto.PostSearchHit, error) {
	if s.search == nil {
		return []dto.PostSearchHit{}, nil
	}
	return s.search.SearchPosts(ctx, query)
}

func mapPost(p *model.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:             p.ID,
		AuthorID:       p.AuthorID,
		AuthorUsername: p.Author.Username,
		Content:        p.Content,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}
