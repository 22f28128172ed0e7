package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// ListProjects returns the caller's project cards with server-derived
// aggregates (member counts, task totals, status, palette color).
func (c *Client) ListProjects(ctx context.Context, token string) ([]ProjectCard, error) {
	var cards []ProjectCard
	if err := c.getJSON(ctx, "list projects", "/projects", token, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateProject creates a project owned by the caller. The response is a
// single card; callers reload the full list rather than trusting it for
// aggregates.
func (c *Client) CreateProject(ctx context.Context, token string, in CreateProjectInput) (*ProjectCard, error) {
	var card ProjectCard
	if err := c.sendJSON(ctx, "create project", http.MethodPost, "/projects", token, in, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// JoinProject adds the caller to a project's membership. The backend answers
// 204 with no body; joining an already-joined project is a no-op.
func (c *Client) JoinProject(ctx context.Context, token string, projectID int64) error {
	path := fmt.Sprintf("/projects/%d/join", projectID)
	return c.do(ctx, "join project", http.MethodPost, path, token, "", nil, nil)
}
