package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"playto.com/communityfeed/internal/service"
	"playto.com/communityfeed/pkg/response"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
}

func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.service.GetLeaderboard(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
