package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// ListMessages returns a project's chat history. Membership-gated.
func (c *Client) ListMessages(ctx context.Context, token string, projectID int64) ([]Message, error) {
	path := fmt.Sprintf("/projects/%d/messages", projectID)
	var messages []Message
	if err := c.getJSON(ctx, "list messages", path, token, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// PostMessage appends a chat message. Ids and timestamps are server-assigned,
// so callers refetch the list instead of appending the response locally.
func (c *Client) PostMessage(ctx context.Context, token string, projectID int64, content string) (*Message, error) {
	path := fmt.Sprintf("/projects/%d/messages", projectID)
	payload := map[string]string{"content": content}
	var message Message
	if err := c.sendJSON(ctx, "post message", http.MethodPost, path, token, payload, &message); err != nil {
		return nil, err
	}
	return &message, nil
}
