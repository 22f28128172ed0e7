package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/adwyte/synergysphere-web/internal/middleware"
	"github.com/adwyte/synergysphere-web/internal/session"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/adwyte/synergysphere-web/internal/view"
	"github.com/gin-gonic/gin"
)

type fakeProjectAPI struct {
	cards    []upstream.ProjectCard
	listErr  error
	created  []upstream.CreateProjectInput
	joined   []int64
	joinErr  error
	listN    int
	lastTok  string
	createdN int
}

func (f *fakeProjectAPI) ListProjects(_ context.Context, token string) ([]upstream.ProjectCard, error) {
	f.listN++
	f.lastTok = token
	return f.cards, f.listErr
}

func (f *fakeProjectAPI) CreateProject(_ context.Context, _ string, in upstream.CreateProjectInput) (*upstream.ProjectCard, error) {
	f.createdN++
	f.created = append(f.created, in)
	card := upstream.ProjectCard{ID: int64(100 + f.createdN), Name: in.Name, Status: "active"}
	f.cards = append(f.cards, card)
	return &card, nil
}

func (f *fakeProjectAPI) JoinProject(_ context.Context, _ string, projectID int64) error {
	f.joined = append(f.joined, projectID)
	return f.joinErr
}

func dashboardTestRouter(api *fakeProjectAPI) *gin.Engine {
	h := NewDashboardHandler(api)
	router := gin.New()
	sess := &session.Session{SID: "sid-1", Token: "tok", User: upstream.User{ID: 7, Email: "amit@example.com"}}
	group := router.Group("/api", middleware.WithSession(sess))
	group.GET("/projects", h.List)
	group.POST("/projects", h.Create)
	group.POST("/projects/:id/join", h.Join)
	return router
}

func decodeProjects(t *testing.T, body []byte) []view.ProjectVM {
	t.Helper()
	var resp struct {
		Data []view.ProjectVM `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Data
}

func TestDashboardList_MapsAndFilters(t *testing.T) {
	api := &fakeProjectAPI{cards: []upstream.ProjectCard{
		{ID: 1, Name: "Website Redesign", TasksCompleted: 2, TotalTasks: 3, Status: "active"},
		{ID: 2, Name: "Mobile App", Description: "ship the android build", Status: "active"},
	}}
	router := dashboardTestRouter(api)

	w := performJSON(router, "GET", "/api/projects", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	projects := decodeProjects(t, w.Body.Bytes())
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ProgressPercentage != 67 {
		t.Errorf("expected 67%% progress, got %d", projects[0].ProgressPercentage)
	}
	if api.lastTok != "tok" {
		t.Errorf("expected session token to reach the fetcher, got %q", api.lastTok)
	}

	// description matches count too
	w = performJSON(router, "GET", "/api/projects?q=android", "")
	projects = decodeProjects(t, w.Body.Bytes())
	if len(projects) != 1 || projects[0].Name != "Mobile App" {
		t.Errorf("expected the android project only, got %+v", projects)
	}
}

func TestDashboardCreate_ReloadsList(t *testing.T) {
	api := &fakeProjectAPI{}
	router := dashboardTestRouter(api)

	w := performJSON(router, "POST", "/api/projects", `{"name":"New Project","description":"fresh"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if api.createdN != 1 {
		t.Fatalf("expected one create, got %d", api.createdN)
	}
	if api.listN != 1 {
		t.Errorf("create must be followed by a full list reload, got %d list calls", api.listN)
	}
	projects := decodeProjects(t, w.Body.Bytes())
	if len(projects) != 1 || projects[0].Name != "New Project" {
		t.Errorf("expected reloaded dashboard with the new card, got %+v", projects)
	}
}

func TestDashboardCreate_RequiresName(t *testing.T) {
	api := &fakeProjectAPI{}
	router := dashboardTestRouter(api)

	w := performJSON(router, "POST", "/api/projects", `{"description":"no name"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if api.createdN != 0 {
		t.Error("invalid payload must not reach the backend")
	}
}

func TestDashboardJoin_ThenReload(t *testing.T) {
	api := &fakeProjectAPI{cards: []upstream.ProjectCard{{ID: 5, Name: "Ops", Status: "active"}}}
	router := dashboardTestRouter(api)

	w := performJSON(router, "POST", "/api/projects/5/join", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(api.joined) != 1 || api.joined[0] != 5 {
		t.Errorf("expected join of project 5, got %v", api.joined)
	}
	if api.listN != 1 {
		t.Errorf("join should reload the dashboard, got %d list calls", api.listN)
	}
}

func TestDashboardJoin_MembershipErrorPassesThrough(t *testing.T) {
	api := &fakeProjectAPI{joinErr: &upstream.Error{
		Kind: upstream.KindHTTP, Op: "join", Status: 409, Body: `{"detail":"Already a member"}`,
	}}
	router := dashboardTestRouter(api)

	w := performJSON(router, "POST", "/api/projects/5/join", "")
	if w.Code != http.StatusConflict {
		t.Errorf("expected upstream 409 to pass through, got %d", w.Code)
	}
}
