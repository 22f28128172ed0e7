package handlers

import (
	"github.com/adwyte/synergysphere-web/internal/board"
	"github.com/adwyte/synergysphere-web/pkg/response"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	boards *board.Registry
}

func NewChatHandler(boards *board.Registry) *ChatHandler {
	return &ChatHandler{boards: boards}
}

// List returns the project chat thread, oldest first. Every read refetches;
// the board cache never shortcuts a thread load.
// GET /api/projects/:id/messages
func (h *ChatHandler) List(c *gin.Context) {
	st := projectBoard(c, h.boards)
	if st == nil {
		return
	}
	if err := st.RefreshMessages(c.Request.Context()); err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, st.Messages())
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Send posts a message and returns the refetched thread
// POST /api/projects/:id/messages
func (h *ChatHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	st := projectBoard(c, h.boards)
	if st == nil {
		return
	}
	if err := st.SendMessage(c.Request.Context(), req.Content); err != nil {
		upstreamError(c, err)
		return
	}
	response.Created(c, st.Messages())
}
