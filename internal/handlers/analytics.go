package handlers

import (
	"github.com/adwyte/synergysphere-web/internal/board"
	"github.com/adwyte/synergysphere-web/pkg/response"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	boards *board.Registry
}

func NewAnalyticsHandler(boards *board.Registry) *AnalyticsHandler {
	return &AnalyticsHandler{boards: boards}
}

// Leaderboard returns ranked member scores for a project
// GET /api/projects/:id/leaderboard
func (h *AnalyticsHandler) Leaderboard(c *gin.Context) {
	st := projectBoard(c, h.boards)
	if st == nil {
		return
	}
	if err := st.RefreshLeaderboard(c.Request.Context()); err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, st.Leaders())
}
