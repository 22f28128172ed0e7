package view

import (
	"strings"

	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/samber/lo"
)

// UI-facing shapes built from wire shapes. These are what the handlers
// serialize to the browser shell.

type UserVM struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Initials string `json:"initials"`
}

func UserToVM(u upstream.User) UserVM {
	name := u.Email
	if u.Name != nil && *u.Name != "" {
		name = *u.Name
	}
	vm := UserVM{
		ID:       u.ID,
		Name:     name,
		Email:    u.Email,
		Initials: Initials(name),
	}
	if u.AvatarURL != nil {
		vm.Avatar = *u.AvatarURL
	}
	return vm
}

type ProjectVM struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	MemberCount        int      `json:"memberCount"`
	TasksCompleted     int      `json:"tasksCompleted"`
	TotalTasks         int      `json:"totalTasks"`
	ProgressPercentage int      `json:"progressPercentage"`
	DueDate            string   `json:"dueDate,omitempty"`
	Status             string   `json:"status"`
	StatusBadge        Badge    `json:"statusBadge"`
	Color              string   `json:"color"`
	MemberInitials     []string `json:"memberInitials"`
}

func ProjectToVM(p upstream.ProjectCard) ProjectVM {
	vm := ProjectVM{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		MemberCount:        p.Members,
		TasksCompleted:     p.TasksCompleted,
		TotalTasks:         p.TotalTasks,
		ProgressPercentage: ProgressPercentage(p.TasksCompleted, p.TotalTasks),
		Status:             p.Status,
		StatusBadge:        StatusBadge(p.Status),
		Color:              p.Color,
		MemberInitials: lo.Map(p.MembersPreview, func(m upstream.MemberPreview, _ int) string {
			if m.Name != nil && *m.Name != "" {
				return Initials(*m.Name)
			}
			return Initials(m.Email)
		}),
	}
	if p.DueDate != nil {
		vm.DueDate = *p.DueDate
	}
	return vm
}

// FilterProjects applies the dashboard's client-side search over project
// name and description, case-insensitively. An empty query matches all.
func FilterProjects(projects []ProjectVM, query string) []ProjectVM {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return projects
	}
	return lo.Filter(projects, func(p ProjectVM, _ int) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	})
}

type TaskVM struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status"` // UI form: todo, in-progress, done
	Priority         string `json:"priority"`
	PriorityBadge    Badge  `json:"priorityBadge"`
	Assignee         string `json:"assignee"`
	AssigneeInitials string `json:"assigneeInitials"`
	DueDate          string `json:"dueDate,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

func TaskToVM(t upstream.Task, members []upstream.Member) TaskVM {
	assignee := AssigneeName(t.AssigneeID, members)
	vm := TaskVM{
		ID:               t.ID,
		Title:            t.Title,
		Status:           APIToUIStatus(t.Status),
		Priority:         t.Priority,
		PriorityBadge:    PriorityBadge(t.Priority),
		Assignee:         assignee,
		AssigneeInitials: Initials(assignee),
		CreatedAt:        t.CreatedAt,
	}
	if t.Description != nil {
		vm.Description = *t.Description
	}
	if t.DueDate != nil {
		vm.DueDate = *t.DueDate
	}
	return vm
}

// BoardColumns groups task view models into the three board columns.
type BoardColumns struct {
	Todo       []TaskVM `json:"todo"`
	InProgress []TaskVM `json:"inProgress"`
	Done       []TaskVM `json:"done"`
}

func GroupTasks(tasks []TaskVM) BoardColumns {
	return BoardColumns{
		Todo:       lo.Filter(tasks, func(t TaskVM, _ int) bool { return t.Status == StatusTodo }),
		InProgress: lo.Filter(tasks, func(t TaskVM, _ int) bool { return t.Status == StatusInProgress }),
		Done:       lo.Filter(tasks, func(t TaskVM, _ int) bool { return t.Status == StatusDone }),
	}
}

type MemberVM struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Initials string `json:"initials"`
}

func MemberToVM(m upstream.Member) MemberVM {
	name := DisplayName(m)
	vm := MemberVM{
		ID:       m.ID,
		Name:     name,
		Email:    m.Email,
		Initials: Initials(name),
	}
	if m.Avatar != nil {
		vm.Avatar = *m.Avatar
	}
	return vm
}

type MessageVM struct {
	ID             int64  `json:"id"`
	Author         string `json:"author"`
	AuthorInitials string `json:"authorInitials"`
	Content        string `json:"content"`
	Timestamp      string `json:"timestamp"`
}

func MessageToVM(m upstream.Message) MessageVM {
	return MessageVM{
		ID:             m.ID,
		Author:         m.Author,
		AuthorInitials: Initials(m.Author),
		Content:        m.Content,
		Timestamp:      m.Timestamp,
	}
}

type LeaderVM struct {
	Rank     int     `json:"rank"`
	UserID   int64   `json:"userId"`
	Name     string  `json:"name"`
	Avatar   string  `json:"avatar,omitempty"`
	Initials string  `json:"initials"`
	Score    float64 `json:"score"`
}

// LeadersToVM assigns 1-based ranks in the order the backend returned,
// which is already highest score first.
func LeadersToVM(leaders []upstream.Leader) []LeaderVM {
	return lo.Map(leaders, func(l upstream.Leader, i int) LeaderVM {
		vm := LeaderVM{
			Rank:     i + 1,
			UserID:   l.UserID,
			Name:     l.Name,
			Initials: Initials(l.Name),
			Score:    l.Score,
		}
		if l.Avatar != nil {
			vm.Avatar = *l.Avatar
		}
		return vm
	})
}
