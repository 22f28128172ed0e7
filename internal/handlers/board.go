package handlers

import (
	"errors"
	"strconv"

	"github.com/adwyte/synergysphere-web/internal/board"
	"github.com/adwyte/synergysphere-web/internal/middleware"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/adwyte/synergysphere-web/pkg/response"
	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards *board.Registry
}

func NewBoardHandler(boards *board.Registry) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// projectBoard resolves :id plus the caller's session into their board
// state, loading it on first touch. Writes the error response itself and
// returns nil when the caller should stop.
func projectBoard(c *gin.Context, boards *board.Registry) *board.State {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return nil
	}
	return boardFor(c, boards, id)
}

func boardFor(c *gin.Context, boards *board.Registry, projectID int64) *board.State {
	sess := middleware.CurrentSession(c)
	st := boards.Get(sess.SID, sess.Token, projectID)
	if !st.Loaded() {
		if err := st.Load(c.Request.Context()); err != nil && !errors.Is(err, board.ErrSuperseded) {
			upstreamError(c, err)
			return nil
		}
	}
	return st
}

// Get returns the full board for a project
// GET /api/projects/:id/board
func (h *BoardHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	sess := middleware.CurrentSession(c)
	st := h.boards.Get(sess.SID, sess.Token, id)

	refresh := c.Query("refresh") == "1"
	if !st.Loaded() || refresh {
		if err := st.Load(c.Request.Context()); err != nil && !errors.Is(err, board.ErrSuperseded) {
			upstreamError(c, err)
			return
		}
	}
	response.Success(c, st.Snapshot())
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	AssigneeID  *int64  `json:"assignee_id"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
}

// CreateTask adds a task and returns the refetched board
// POST /api/projects/:id/tasks
func (h *BoardHandler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	st := projectBoard(c, h.boards)
	if st == nil {
		return
	}
	err := st.CreateTask(c.Request.Context(), upstream.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		upstreamError(c, err)
		return
	}
	response.Created(c, st.Snapshot())
}

type moveTaskRequest struct {
	ProjectID int64  `json:"project_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// Move sets a task's column
// POST /api/tasks/:id/move
func (h *BoardHandler) Move(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}
	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	st := boardFor(c, h.boards, req.ProjectID)
	if st == nil {
		return
	}
	if err := st.MoveTask(c.Request.Context(), taskID, req.Status); err != nil {
		if errors.Is(err, board.ErrBadStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		upstreamError(c, err)
		return
	}
	response.Success(c, st.Snapshot())
}

type assignTaskRequest struct {
	ProjectID  int64  `json:"project_id" binding:"required"`
	AssigneeID *int64 `json:"assignee_id"` // null clears the assignee
}

// Assign changes or clears a task's assignee
// POST /api/tasks/:id/assign
func (h *BoardHandler) Assign(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}
	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	st := boardFor(c, h.boards, req.ProjectID)
	if st == nil {
		return
	}
	if err := st.ReassignTask(c.Request.Context(), taskID, req.AssigneeID); err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, st.Snapshot())
}

type priorityTaskRequest struct {
	ProjectID int64  `json:"project_id" binding:"required"`
	Priority  string `json:"priority" binding:"required,oneof=low medium high"`
}

// Priority sets a task's priority
// POST /api/tasks/:id/priority
func (h *BoardHandler) Priority(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}
	var req priorityTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	st := boardFor(c, h.boards, req.ProjectID)
	if st == nil {
		return
	}
	if err := st.SetPriority(c.Request.Context(), taskID, req.Priority); err != nil {
		upstreamError(c, err)
		return
	}
	response.Success(c, st.Snapshot())
}
