package handlers

import (
	"context"
	"time"

	"github.com/adwyte/synergysphere-web/internal/board"
	"github.com/adwyte/synergysphere-web/internal/middleware"
	"github.com/adwyte/synergysphere-web/internal/session"
	"github.com/adwyte/synergysphere-web/internal/view"
	"github.com/adwyte/synergysphere-web/pkg/response"
	"github.com/gin-gonic/gin"
)

// SessionManager is the session lifecycle as the handlers need it.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Signup(ctx context.Context, name, email, password string) (*session.Session, error)
	Logout(ctx context.Context, sid string)
	Restore(ctx context.Context, sid string) (*session.Session, error)
}

type SessionHandler struct {
	manager    SessionManager
	boards     *board.Registry
	cookieName string
	ttl        time.Duration
}

func NewSessionHandler(manager SessionManager, boards *board.Registry, cookieName string, ttl time.Duration) *SessionHandler {
	return &SessionHandler{manager: manager, boards: boards, cookieName: cookieName, ttl: ttl}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type sessionView struct {
	User     view.UserVM `json:"user"`
	Degraded bool        `json:"degraded,omitempty"`
}

// Login authenticates and starts a session
// POST /api/session/login
func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sess, err := h.manager.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		upstreamError(c, err)
		return
	}

	h.setCookie(c, sess.SID)
	response.Success(c, sessionView{User: view.UserToVM(sess.User)})
}

// Signup registers an account and signs in
// POST /api/session/signup
func (h *SessionHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sess, err := h.manager.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		upstreamError(c, err)
		return
	}

	h.setCookie(c, sess.SID)
	response.Created(c, sessionView{User: view.UserToVM(sess.User)})
}

// Logout ends the session. Always succeeds.
// POST /api/session/logout
func (h *SessionHandler) Logout(c *gin.Context) {
	sid, err := c.Cookie(h.cookieName)
	if err == nil && sid != "" {
		h.manager.Logout(c.Request.Context(), sid)
		h.boards.Drop(sid)
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	response.Success(c, nil)
}

// Current returns the signed-in user for the session cookie
// GET /api/session
func (h *SessionHandler) Current(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	response.Success(c, sessionView{User: view.UserToVM(sess.User), Degraded: sess.Degraded})
}

func (h *SessionHandler) setCookie(c *gin.Context, sid string) {
	c.SetCookie(h.cookieName, sid, int(h.ttl.Seconds()), "/", "", false, true)
}

// ensure the concrete manager keeps satisfying the handler interface
var _ SessionManager = (*session.Manager)(nil)
