package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/adwyte/synergysphere-web/internal/board"
	"github.com/adwyte/synergysphere-web/internal/middleware"
	"github.com/adwyte/synergysphere-web/internal/session"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/gin-gonic/gin"
)

// scriptedFetcher serves a small fixed project for board handler tests.
type scriptedFetcher struct {
	tasks    []upstream.Task
	members  []upstream.Member
	messages []upstream.Message
	updated  []map[string]interface{}
}

func (f *scriptedFetcher) ListTasks(context.Context, string, int64) ([]upstream.Task, error) {
	return f.tasks, nil
}

func (f *scriptedFetcher) CreateTask(_ context.Context, _ string, in upstream.CreateTaskInput) (*upstream.Task, error) {
	t := upstream.Task{ID: 99, Title: in.Title, Status: "todo", Priority: "medium"}
	f.tasks = append(f.tasks, t)
	return &t, nil
}

func (f *scriptedFetcher) UpdateTask(_ context.Context, _ string, taskID int64, fields map[string]interface{}) (*upstream.Task, error) {
	f.updated = append(f.updated, fields)
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			t := f.tasks[i]
			if s, ok := fields["status"].(string); ok {
				t.Status = s
			}
			f.tasks[i] = t
			return &t, nil
		}
	}
	return nil, &upstream.Error{Kind: upstream.KindHTTP, Op: "update", Status: 404, Body: "task not found"}
}

func (f *scriptedFetcher) ListMembers(context.Context, string, int64) ([]upstream.Member, error) {
	return f.members, nil
}

func (f *scriptedFetcher) AddMember(_ context.Context, _ string, _ int64, email string) (*upstream.Member, error) {
	m := upstream.Member{ID: int64(len(f.members) + 1), Email: email}
	f.members = append(f.members, m)
	return &m, nil
}

func (f *scriptedFetcher) ListMessages(context.Context, string, int64) ([]upstream.Message, error) {
	return f.messages, nil
}

func (f *scriptedFetcher) PostMessage(_ context.Context, _ string, _ int64, content string) (*upstream.Message, error) {
	m := upstream.Message{ID: int64(len(f.messages) + 1), Author: "Amit", Content: content}
	f.messages = append(f.messages, m)
	return &m, nil
}

func (f *scriptedFetcher) Leaderboard(context.Context, string, int64) ([]upstream.Leader, error) {
	return nil, nil
}

func (f *scriptedFetcher) JoinProject(context.Context, string, int64) error { return nil }

func boardTestRouter(f *scriptedFetcher) *gin.Engine {
	boards := board.NewRegistry(f, time.Minute)
	h := NewBoardHandler(boards)
	router := gin.New()
	sess := &session.Session{SID: "sid-1", Token: "tok", User: upstream.User{ID: 7}}
	group := router.Group("/api", middleware.WithSession(sess))
	group.GET("/projects/:id/board", h.Get)
	group.POST("/projects/:id/tasks", h.CreateTask)
	group.POST("/tasks/:id/move", h.Move)
	group.POST("/tasks/:id/assign", h.Assign)
	return router
}

func decodeBoard(t *testing.T, body []byte) board.Snapshot {
	t.Helper()
	var resp struct {
		Data board.Snapshot `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Data
}

func TestBoardGet_GroupsColumns(t *testing.T) {
	f := &scriptedFetcher{tasks: []upstream.Task{
		{ID: 1, Title: "a", Status: "todo", Priority: "low"},
		{ID: 2, Title: "b", Status: "in_progress", Priority: "high"},
	}}
	router := boardTestRouter(f)

	w := performJSON(router, "GET", "/api/projects/42/board", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	snap := decodeBoard(t, w.Body.Bytes())
	if len(snap.Columns.Todo) != 1 || len(snap.Columns.InProgress) != 1 || len(snap.Columns.Done) != 0 {
		t.Errorf("unexpected column split: %+v", snap.Columns)
	}
	if snap.Columns.InProgress[0].Status != "in-progress" {
		t.Errorf("board serves UI status names, got %q", snap.Columns.InProgress[0].Status)
	}
}

func TestBoardMove_ReturnsPatchedBoard(t *testing.T) {
	f := &scriptedFetcher{tasks: []upstream.Task{
		{ID: 1, Title: "a", Status: "todo", Priority: "low"},
	}}
	router := boardTestRouter(f)

	w := performJSON(router, "POST", "/api/tasks/1/move", `{"project_id":42,"status":"in-progress"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	snap := decodeBoard(t, w.Body.Bytes())
	if len(snap.Columns.InProgress) != 1 {
		t.Errorf("moved task should be in progress, got %+v", snap.Columns)
	}
	if len(f.updated) != 1 || f.updated[0]["status"] != "in_progress" {
		t.Errorf("backend should receive the wire status name, got %v", f.updated)
	}
}

func TestBoardMove_UnknownColumn(t *testing.T) {
	f := &scriptedFetcher{tasks: []upstream.Task{{ID: 1, Status: "todo", Priority: "low"}}}
	router := boardTestRouter(f)

	w := performJSON(router, "POST", "/api/tasks/1/move", `{"project_id":42,"status":"archived"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown column, got %d", w.Code)
	}
}

func TestBoardCreateTask_RefetchesBoard(t *testing.T) {
	f := &scriptedFetcher{}
	router := boardTestRouter(f)

	w := performJSON(router, "POST", "/api/projects/42/tasks", `{"title":"ship it"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	snap := decodeBoard(t, w.Body.Bytes())
	if len(snap.Columns.Todo) != 1 || snap.Columns.Todo[0].Title != "ship it" {
		t.Errorf("expected the new task on the refetched board, got %+v", snap.Columns)
	}
}
