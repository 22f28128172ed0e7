package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/adwyte/synergysphere-web/internal/board"
	"github.com/adwyte/synergysphere-web/internal/middleware"
	"github.com/adwyte/synergysphere-web/internal/session"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/adwyte/synergysphere-web/internal/view"
	"github.com/gin-gonic/gin"
)

func chatTeamTestRouter(f *scriptedFetcher) *gin.Engine {
	boards := board.NewRegistry(f, time.Minute)
	chat := NewChatHandler(boards)
	team := NewTeamHandler(boards)
	router := gin.New()
	sess := &session.Session{SID: "sid-1", Token: "tok", User: upstream.User{ID: 7}}
	group := router.Group("/api", middleware.WithSession(sess))
	group.GET("/projects/:id/messages", chat.List)
	group.POST("/projects/:id/messages", chat.Send)
	group.GET("/projects/:id/members", team.List)
	group.POST("/projects/:id/members", team.Add)
	return router
}

func decodeMessages(t *testing.T, body []byte) []view.MessageVM {
	t.Helper()
	var resp struct {
		Data []view.MessageVM `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Data
}

func decodeMembers(t *testing.T, body []byte) []view.MemberVM {
	t.Helper()
	var resp struct {
		Data []view.MemberVM `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Data
}

func TestChatList_AlwaysFetchesFresh(t *testing.T) {
	f := &scriptedFetcher{messages: []upstream.Message{
		{ID: 1, Author: "Alice", Content: "standup at 10", Timestamp: "2026-08-01T10:00:00Z"},
	}}
	router := chatTeamTestRouter(f)

	w := performJSON(router, "GET", "/api/projects/42/messages", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeMessages(t, w.Body.Bytes()); len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}

	// a message posted from another session shows up on the next read
	f.messages = append(f.messages, upstream.Message{
		ID: 2, Author: "Bob", Content: "running late", Timestamp: "2026-08-01T10:05:00Z",
	})
	w = performJSON(router, "GET", "/api/projects/42/messages", "")
	got := decodeMessages(t, w.Body.Bytes())
	if len(got) != 2 {
		t.Fatalf("thread read must refetch, got %d messages", len(got))
	}
	if got[1].Content != "running late" {
		t.Errorf("expected the new message last, got %+v", got)
	}
}

func TestChatList_ServedOldestFirst(t *testing.T) {
	f := &scriptedFetcher{messages: []upstream.Message{
		{ID: 2, Author: "Bob", Content: "newest", Timestamp: "2026-08-01T11:00:00Z"},
		{ID: 1, Author: "Alice", Content: "oldest", Timestamp: "2026-08-01T10:00:00Z"},
	}}
	router := chatTeamTestRouter(f)

	w := performJSON(router, "GET", "/api/projects/42/messages", "")
	got := decodeMessages(t, w.Body.Bytes())
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content != "oldest" || got[1].Content != "newest" {
		t.Errorf("thread should be timestamp ascending, got %+v", got)
	}
}

func TestTeamList_AlwaysFetchesFresh(t *testing.T) {
	alice := "Alice"
	f := &scriptedFetcher{members: []upstream.Member{
		{ID: 10, Name: &alice, Email: "alice@example.com"},
	}}
	router := chatTeamTestRouter(f)

	w := performJSON(router, "GET", "/api/projects/42/members", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeMembers(t, w.Body.Bytes()); len(got) != 1 {
		t.Fatalf("expected 1 member, got %d", len(got))
	}

	// someone joins from elsewhere; the roster read must see them
	f.members = append(f.members, upstream.Member{ID: 11, Email: "bob@example.com"})
	w = performJSON(router, "GET", "/api/projects/42/members", "")
	if got := decodeMembers(t, w.Body.Bytes()); len(got) != 2 {
		t.Errorf("roster read must refetch, got %d members", len(got))
	}
}

func TestChatSend_AppendsAndReturnsThread(t *testing.T) {
	f := &scriptedFetcher{}
	router := chatTeamTestRouter(f)

	w := performJSON(router, "POST", "/api/projects/42/messages", `{"content":"shipping tonight"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	got := decodeMessages(t, w.Body.Bytes())
	if len(got) != 1 || got[0].Content != "shipping tonight" {
		t.Errorf("expected the sent message in the refetched thread, got %+v", got)
	}
}
