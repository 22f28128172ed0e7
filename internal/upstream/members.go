package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// ListMembers returns a project's membership set. Membership-gated.
func (c *Client) ListMembers(ctx context.Context, token string, projectID int64) ([]Member, error) {
	path := fmt.Sprintf("/projects/%d/members", projectID)
	var members []Member
	if err := c.getJSON(ctx, "list members", path, token, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember adds a user to the project by email. The backend creates the
// user on the fly when the email is unknown.
func (c *Client) AddMember(ctx context.Context, token string, projectID int64, email string) (*Member, error) {
	path := fmt.Sprintf("/projects/%d/members", projectID)
	payload := map[string]string{"email": email}
	var member Member
	if err := c.sendJSON(ctx, "add member", http.MethodPost, path, token, payload, &member); err != nil {
		return nil, err
	}
	return &member, nil
}
