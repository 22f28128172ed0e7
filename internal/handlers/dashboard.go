package handlers

import (
	"context"
	"strconv"

	"github.com/adwyte/synergysphere-web/internal/middleware"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/adwyte/synergysphere-web/internal/view"
	"github.com/adwyte/synergysphere-web/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// ProjectAPI is the slice of the backend client the dashboard needs.
type ProjectAPI interface {
	ListProjects(ctx context.Context, token string) ([]upstream.ProjectCard, error)
	CreateProject(ctx context.Context, token string, in upstream.CreateProjectInput) (*upstream.ProjectCard, error)
	JoinProject(ctx context.Context, token string, projectID int64) error
}

type DashboardHandler struct {
	api ProjectAPI
}

func NewDashboardHandler(api ProjectAPI) *DashboardHandler {
	return &DashboardHandler{api: api}
}

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
}

// List returns the project cards, optionally filtered by ?q=
// GET /api/projects
func (h *DashboardHandler) List(c *gin.Context) {
	cards, err := h.listVMs(c)
	if err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, view.FilterProjects(cards, c.Query("q")))
}

// Create makes a project and returns the reloaded dashboard
// POST /api/projects
func (h *DashboardHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token := middleware.CurrentSession(c).Token
	_, err := h.api.CreateProject(c.Request.Context(), token, upstream.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		upstreamError(c, err)
		return
	}

	// a create is followed by a full reload so the new card carries the
	// backend's computed fields
	cards, err := h.listVMs(c)
	if err != nil {
		upstreamError(c, err)
		return
	}
	response.Created(c, cards)
}

// Join adds the caller to a project and returns the reloaded dashboard
// POST /api/projects/:id/join
func (h *DashboardHandler) Join(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	token := middleware.CurrentSession(c).Token
	if err := h.api.JoinProject(c.Request.Context(), token, id); err != nil {
		upstreamError(c, err)
		return
	}

	cards, err := h.listVMs(c)
	if err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, cards)
}

func (h *DashboardHandler) listVMs(c *gin.Context) ([]view.ProjectVM, error) {
	token := middleware.CurrentSession(c).Token
	cards, err := h.api.ListProjects(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	return lo.Map(cards, func(p upstream.ProjectCard, _ int) view.ProjectVM {
		return view.ProjectToVM(p)
	}), nil
}
