package upstream

// Wire shapes as the backend serves them. Request bodies are snake_case;
// project cards and leaderboard rows come back camelCase, tasks snake_case.
// No client-side schema validation happens beyond decoding into these types.

type User struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// LoginResult is the credentials-grant response: token plus the user record.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "bearer"
	User        User   `json:"user"`
}

type MemberPreview struct {
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type ProjectCard struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Members        int             `json:"members"`
	TasksCompleted int             `json:"tasksCompleted"`
	TotalTasks     int             `json:"totalTasks"`
	DueDate        *string         `json:"dueDate"`
	Status         string          `json:"status"` // active, completed, overdue
	Color          string          `json:"color"`
	MembersPreview []MemberPreview `json:"membersPreview"`
}

type CreateProjectInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date,omitempty"`
}

type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AssigneeID  *int64  `json:"assignee_id"` // nil means unassigned
	Status      string  `json:"status"`      // todo, in_progress, done
	Priority    string  `json:"priority"`    // low, medium, high
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
}

type CreateTaskInput struct {
	ProjectID   int64   `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	AssigneeID  *int64  `json:"assignee_id,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Status      string  `json:"status,omitempty"`
}

type Member struct {
	ID     int64   `json:"id"`
	Name   *string `json:"name"` // nil falls back to email in the view layer
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

type Message struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type Leader struct {
	UserID int64   `json:"userId"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
	Score  float64 `json:"score"`
}
