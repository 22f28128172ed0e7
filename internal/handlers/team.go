package handlers

import (
	"github.com/adwyte/synergysphere-web/internal/board"
	"github.com/adwyte/synergysphere-web/pkg/response"
	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	boards *board.Registry
}

func NewTeamHandler(boards *board.Registry) *TeamHandler {
	return &TeamHandler{boards: boards}
}

// List returns the project roster, refetched on every read
// GET /api/projects/:id/members
func (h *TeamHandler) List(c *gin.Context) {
	st := projectBoard(c, h.boards)
	if st == nil {
		return
	}
	if err := st.RefreshMembers(c.Request.Context()); err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, st.Members())
}

type addMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Add invites a member by email and returns the refetched roster
// POST /api/projects/:id/members
func (h *TeamHandler) Add(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	st := projectBoard(c, h.boards)
	if st == nil {
		return
	}
	if err := st.AddMember(c.Request.Context(), req.Email); err != nil {
		upstreamError(c, err)
		return
	}
	response.Created(c, st.Members())
}
