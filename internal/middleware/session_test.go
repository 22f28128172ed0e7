package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adwyte/synergysphere-web/internal/session"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/gin-gonic/gin"
)

type fakeRestorer struct {
	sess *session.Session
	err  error
	sid  string
}

func (f *fakeRestorer) Restore(_ context.Context, sid string) (*session.Session, error) {
	f.sid = sid
	if f.err != nil {
		return nil, f.err
	}
	return f.sess, nil
}

func sessionRouter(r *fakeRestorer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", SessionRequired(r, "synergy_sid"), func(c *gin.Context) {
		sess := CurrentSession(c)
		c.JSON(200, gin.H{"email": sess.User.Email})
	})
	return router
}

func TestSessionRequired_NoCookie(t *testing.T) {
	router := sessionRouter(&fakeRestorer{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without cookie, got %d", w.Code)
	}
}

func TestSessionRequired_RestoresAndExposesSession(t *testing.T) {
	r := &fakeRestorer{sess: &session.Session{
		SID:   "abc",
		Token: "tok",
		User:  upstream.User{ID: 7, Email: "amit@example.com"},
	}}
	router := sessionRouter(r)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "synergy_sid", Value: "abc"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if r.sid != "abc" {
		t.Errorf("expected restore with sid abc, got %q", r.sid)
	}
}

func TestSessionRequired_ExpiredSession(t *testing.T) {
	router := sessionRouter(&fakeRestorer{err: session.ErrNoSession})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "synergy_sid", Value: "stale"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a dead session, got %d", w.Code)
	}
}

func TestSessionRequired_BackendOutageIs502(t *testing.T) {
	router := sessionRouter(&fakeRestorer{err: errors.New("validate session: connection refused")})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "synergy_sid", Value: "abc"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502 when validation cannot reach the backend, got %d", w.Code)
	}
}
