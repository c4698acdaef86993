package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playto.com/communityfeed/internal/dto"
	"playto.com/communityfeed/pkg/apperror"
)

type mockLikeService struct {
	likePostFn      func(ctx context.Context, actorID, postID uuid.UUID) (*dto.LikeResult, error)
	unlikePostFn    func(ctx context.Context, actorID, postID uuid.UUID) (*dto.UnlikeResult, error)
	likeCommentFn   func(ctx context.Context, actorID, commentID uuid.UUID) (*dto.LikeResult, error)
	unlikeCommentFn func(ctx context.Context, actorID, commentID uuid.UUID) (*dto.UnlikeResult, error)
}

func (m *mockLikeService) LikePost(ctx context.Context, actorID, postID uuid.UUID) (*dto.LikeResult, error) {
	return m.likePostFn(ctx, actorID, postID)
}

func (m *mockLikeService) UnlikePost(ctx context.Context, actorID, postID uuid.UUID) (*dto.UnlikeResult, error) {
	return m.unlikePostFn(ctx, actorID, postID)
}

func (m *mockLikeService) LikeComment(ctx context.Context, actorID, commentID uuid.UUID) (*dto.LikeResult, error) {
	return m.likeCommentFn(ctx, actorID, commentID)
}

func (m *mockLikeService) UnlikeComment(ctx context.Context, actorID, commentID uuid.UUID) (*dto.UnlikeResult, error) {
	return m.unlikeCommentFn(ctx, actorID, commentID)
}

func setupLikeRouter(svc *mockLikeService, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != nil {
			c.Set("user_id", userID.String())
		}
		c.Next()
	})

	h := NewLikeHandler(svc)
	r.POST("/api/posts/:post_id/like", h.LikePost)
	r.DELETE("/api/posts/:post_id/like", h.UnlikePost)
	r.POST("/api/comments/:comment_id/like", h.LikeComment)
	r.DELETE("/api/comments/:comment_id/like", h.UnlikeComment)
	return r
}

func TestLikePostHandler_Success(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()

	svc := &mockLikeService{
		likePostFn: func(ctx context.Context, actorID, target uuid.UUID) (*dto.LikeResult, error) {
			assert.Equal(t, userID, actorID)
			assert.Equal(t, postID, target)
			return &dto.LikeResult{Liked: true, Created: true, LikeCount: 3}, nil
		},
	}
	router := setupLikeRouter(svc, &userID)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID.String()+"/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true,"created":true,"post_id":"`+postID.String()+`","like_count":3}`, w.Body.String())
}

func TestLikePostHandler_Unauthenticated(t *testing.T) {
	svc := &mockLikeService{}
	router := setupLikeRouter(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+uuid.New().String()+"/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLikePostHandler_InvalidPostID(t *testing.T) {
	userID := uuid.New()
	svc := &mockLikeService{}
	router := setupLikeRouter(svc, &userID)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/not-a-uuid/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikePostHandler_SelfLike(t *testing.T) {
	userID := uuid.New()
	svc := &mockLikeService{
		likePostFn: func(ctx context.Context, actorID, target uuid.UUID) (*dto.LikeResult, error) {
			return nil, apperror.ErrSelfLike
		},
	}
	router := setupLikeRouter(svc, &userID)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+uuid.New().String()+"/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot like their own content")
}

func TestLikePostHandler_NotFound(t *testing.T) {
	userID := uuid.New()
	svc := &mockLikeService{
		likePostFn: func(ctx context.Context, actorID, target uuid.UUID) (*dto.LikeResult, error) {
			return nil, apperror.ErrNotFound
		},
	}
	router := setupLikeRouter(svc, &userID)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+uuid.New().String()+"/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikePostHandler_AlreadyLiked(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()
	svc := &mockLikeService{
		likePostFn: func(ctx context.Context, actorID, target uuid.UUID) (*dto.LikeResult, error) {
			return &dto.LikeResult{Liked: true, Created: false, LikeCount: 1}, nil
		},
	}
	router := setupLikeRouter(svc, &userID)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID.String()+"/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true,"created":false,"post_id":"`+postID.String()+`","like_count":1}`, w.Body.String())
}

func TestUnlikePostHandler_Success(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()
	svc := &mockLikeService{
		unlikePostFn: func(ctx context.Context, actorID, target uuid.UUID) (*dto.UnlikeResult, error) {
			return &dto.UnlikeResult{Liked: false, Deleted: true, LikeCount: 0}, nil
		},
	}
	router := setupLikeRouter(svc, &userID)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+postID.String()+"/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":false,"deleted":true,"post_id":"`+postID.String()+`","like_count":0}`, w.Body.String())
}

func TestLikeCommentHandler_Success(t *testing.T) {
	userID := uuid.New()
	commentID := uuid.New()
	svc := &mockLikeService{
		likeCommentFn: func(ctx context.Context, actorID, target uuid.UUID) (*dto.LikeResult, error) {
			assert.Equal(t, commentID, target)
			return &dto.LikeResult{Liked: true, Created: true, LikeCount: 7}, nil
		},
	}
	router := setupLikeRouter(svc, &userID)

	req := httptest.NewRequest(http.MethodPost, "/api/comments/"+commentID.String()+"/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true,"created":true,"comment_id":"`+commentID.String()+`","like_count":7}`, w.Body.String())
}

func TestUnlikeCommentHandler_NothingToDelete(t *testing.T) {
	userID := uuid.New()
	commentID := uuid.New()
	svc := &mockLikeService{
		unlikeCommentFn: func(ctx context.Context, actorID, target uuid.UUID) (*dto.UnlikeResult, error) {
			return &dto.UnlikeResult{Liked: false, Deleted: false, LikeCount: 2}, nil
		},
	}
	router := setupLikeRouter(svc, &userID)

	req := httptest.NewRequest(http.MethodDelete, "/api/comments/"+commentID.String()+"/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":false,"deleted":false,"comment_id":"`+commentID.String()+`","like_count":2}`, w.Body.String())
}
