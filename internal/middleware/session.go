package middleware

import (
	"context"
	"errors"

	"github.com/adwyte/synergysphere-web/internal/session"
	"github.com/adwyte/synergysphere-web/pkg/response"
	"github.com/gin-gonic/gin"
)

const sessionKey = "currentSession"

// SessionRestorer resolves a SID cookie into a live session.
type SessionRestorer interface {
	Restore(ctx context.Context, sid string) (*session.Session, error)
}

// SessionRequired restores the caller's session from the cookie and aborts
// with 401 when there is none. A backend outage during revalidation maps to
// 502 rather than logging the user out.
func SessionRequired(restorer SessionRestorer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			response.Unauthorized(c, "not signed in")
			c.Abort()
			return
		}

		sess, err := restorer.Restore(c.Request.Context(), sid)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				response.Unauthorized(c, "session expired, sign in again")
			} else {
				response.BadGateway(c, "could not validate session")
			}
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// WithSession injects a fixed session; handler tests use it in place of
// SessionRequired.
func WithSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session placed by SessionRequired.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
