package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// ListTasks returns all tasks for a project. Membership-gated.
func (c *Client) ListTasks(ctx context.Context, token string, projectID int64) ([]Task, error) {
	path := fmt.Sprintf("/tasks/by-project/%d", projectID)
	var tasks []Task
	if err := c.getJSON(ctx, "list tasks", path, token, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task in the project named by in.ProjectID.
func (c *Client) CreateTask(ctx context.Context, token string, in CreateTaskInput) (*Task, error) {
	var task Task
	if err := c.sendJSON(ctx, "create task", http.MethodPost, "/tasks", token, in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask PATCHes a partial set of task fields. fields holds wire-shape
// keys (status, priority, assignee_id, ...); an explicit nil value is sent
// as JSON null, which is how an assignee gets cleared.
func (c *Client) UpdateTask(ctx context.Context, token string, taskID int64, fields map[string]interface{}) (*Task, error) {
	path := fmt.Sprintf("/tasks/%d", taskID)
	var task Task
	if err := c.sendJSON(ctx, "update task", http.MethodPatch, path, token, fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
