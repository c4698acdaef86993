package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"playto.com/communityfeed/internal/dto"
	"playto.com/communityfeed/internal/service"
	"playto.com/communityfeed/pkg/response"
	"playto.com/communityfeed/pkg/validator"
)

type PostHandler struct {
	postService    service.PostService
	commentService service.CommentService
}

func NewPostHandler(postService service.PostService, commentService service.CommentService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
	}
}

func (h *PostHandler) GetAllPosts(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context(), response.ViewerID(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postService.GetByID(c.Request.Context(), postID, response.ViewerID(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetCommentTree returns a post's comments as a nested reply forest.
func (h *PostHandler) GetCommentTree(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	tree, err := h.commentService.GetTree(c.Request.Context(), postID, response.ViewerID(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tree)
}

func (h *PostHandler) SearchPosts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing search query"})
		return
	}

	hits, err := h.postService.Search(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, hits)
}
