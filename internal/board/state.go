package board

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/adwyte/synergysphere-web/internal/view"
	"github.com/adwyte/synergysphere-web/pkg/logger"
	"github.com/samber/lo"
)

// ErrSuperseded is returned by Load when a newer load started while this
// one was in flight; the caller drops the result and serves the newer one.
var ErrSuperseded = errors.New("board load superseded")

// ErrBadStatus rejects column names outside the three-column board.
var ErrBadStatus = errors.New("unknown task status")

// Fetcher is the slice of the backend client the board needs.
type Fetcher interface {
	ListTasks(ctx context.Context, token string, projectID int64) ([]upstream.Task, error)
	CreateTask(ctx context.Context, token string, in upstream.CreateTaskInput) (*upstream.Task, error)
	UpdateTask(ctx context.Context, token string, taskID int64, fields map[string]interface{}) (*upstream.Task, error)
	ListMembers(ctx context.Context, token string, projectID int64) ([]upstream.Member, error)
	AddMember(ctx context.Context, token string, projectID int64, email string) (*upstream.Member, error)
	ListMessages(ctx context.Context, token string, projectID int64) ([]upstream.Message, error)
	PostMessage(ctx context.Context, token string, projectID int64, content string) (*upstream.Message, error)
	Leaderboard(ctx context.Context, token string, projectID int64) ([]upstream.Leader, error)
	JoinProject(ctx context.Context, token string, projectID int64) error
}

// Snapshot is the board as the project detail screen renders it.
type Snapshot struct {
	Columns  view.BoardColumns `json:"columns"`
	Members  []view.MemberVM   `json:"members"`
	Messages []view.MessageVM  `json:"messages"`
	Leaders  []view.LeaderVM   `json:"leaders"`
}

// State holds one project board for one session. Field mutations patch the
// cached task in place after the backend confirms them; creates and sends
// refetch the affected list wholesale. The backend stays the source of
// truth, this cache only spares the screen a reload per click.
type State struct {
	fetcher   Fetcher
	token     string
	projectID int64

	mu       sync.Mutex
	gen      uint64
	tasks    []upstream.Task
	members  []upstream.Member
	messages []upstream.Message
	leaders  []upstream.Leader
	loaded   bool
	lastUsed time.Time
}

func NewState(fetcher Fetcher, token string, projectID int64) *State {
	return &State{fetcher: fetcher, token: token, projectID: projectID, lastUsed: time.Now()}
}

// Load fetches the full board. Tasks and members are required; chat and the
// leaderboard load best-effort so a flaky analytics endpoint cannot block
// the board. A 403 on the first read triggers one self-join and one retry;
// a second rejection surfaces unchanged.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.lastUsed = time.Now()
	s.mu.Unlock()

	tasks, err := s.listTasksJoining(ctx)
	if err != nil {
		return err
	}
	members, err := s.fetcher.ListMembers(ctx, s.token, s.projectID)
	if err != nil {
		return err
	}
	messages, err := s.fetcher.ListMessages(ctx, s.token, s.projectID)
	if err != nil {
		logger.Warn().Err(err).Int64("project_id", s.projectID).Msg("chat preload failed")
		messages = nil
	}
	sortThread(messages)
	leaders, err := s.fetcher.Leaderboard(ctx, s.token, s.projectID)
	if err != nil {
		logger.Warn().Err(err).Int64("project_id", s.projectID).Msg("leaderboard preload failed")
		leaders = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return ErrSuperseded
	}
	s.tasks = tasks
	s.members = members
	s.messages = messages
	s.leaders = leaders
	s.loaded = true
	return nil
}

func (s *State) listTasksJoining(ctx context.Context) ([]upstream.Task, error) {
	tasks, err := s.fetcher.ListTasks(ctx, s.token, s.projectID)
	if !upstream.IsMembershipRequired(err) {
		return tasks, err
	}
	if jerr := s.fetcher.JoinProject(ctx, s.token, s.projectID); jerr != nil {
		return nil, err
	}
	return s.fetcher.ListTasks(ctx, s.token, s.projectID)
}

// MoveTask sets a task's column. On success the cached task is replaced with
// the backend's copy; a move into done also refreshes the leaderboard since
// scores just changed.
func (s *State) MoveTask(ctx context.Context, taskID int64, uiStatus string) error {
	if !view.ValidUIStatus(uiStatus) {
		return ErrBadStatus
	}
	updated, err := s.fetcher.UpdateTask(ctx, s.token, taskID, map[string]interface{}{
		"status": view.UIToAPIStatus(uiStatus),
	})
	if err != nil {
		return err
	}
	s.patchTask(updated)
	if uiStatus == view.StatusDone {
		s.refreshLeaderboard(ctx)
	}
	return nil
}

// ReassignTask changes or clears the assignee. assigneeID nil sends an
// explicit null so the backend unassigns rather than ignoring the field.
func (s *State) ReassignTask(ctx context.Context, taskID int64, assigneeID *int64) error {
	fields := map[string]interface{}{"assignee_id": nil}
	if assigneeID != nil {
		fields["assignee_id"] = *assigneeID
	}
	updated, err := s.fetcher.UpdateTask(ctx, s.token, taskID, fields)
	if err != nil {
		return err
	}
	s.patchTask(updated)
	return nil
}

func (s *State) SetPriority(ctx context.Context, taskID int64, priority string) error {
	updated, err := s.fetcher.UpdateTask(ctx, s.token, taskID, map[string]interface{}{
		"priority": priority,
	})
	if err != nil {
		return err
	}
	s.patchTask(updated)
	return nil
}

// CreateTask posts the task and then refetches the whole list. The backend
// fills defaults and ordering, so a local append would only guess.
func (s *State) CreateTask(ctx context.Context, in upstream.CreateTaskInput) error {
	in.ProjectID = s.projectID
	if _, err := s.fetcher.CreateTask(ctx, s.token, in); err != nil {
		return err
	}
	tasks, err := s.fetcher.ListTasks(ctx, s.token, s.projectID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tasks = tasks
	s.lastUsed = time.Now()
	s.mu.Unlock()
	return nil
}

// SendMessage posts to chat and refetches the thread.
func (s *State) SendMessage(ctx context.Context, content string) error {
	if _, err := s.fetcher.PostMessage(ctx, s.token, s.projectID, content); err != nil {
		return err
	}
	return s.RefreshMessages(ctx)
}

// RefreshMessages refetches the chat thread. Thread reads always hit the
// backend; the cached copy only backs the board snapshot.
func (s *State) RefreshMessages(ctx context.Context) error {
	messages, err := s.fetcher.ListMessages(ctx, s.token, s.projectID)
	if err != nil {
		return err
	}
	sortThread(messages)
	s.mu.Lock()
	s.messages = messages
	s.lastUsed = time.Now()
	s.mu.Unlock()
	return nil
}

// AddMember invites by email and refetches the roster.
func (s *State) AddMember(ctx context.Context, email string) error {
	if _, err := s.fetcher.AddMember(ctx, s.token, s.projectID, email); err != nil {
		return err
	}
	return s.RefreshMembers(ctx)
}

// RefreshMembers refetches the roster.
func (s *State) RefreshMembers(ctx context.Context) error {
	members, err := s.fetcher.ListMembers(ctx, s.token, s.projectID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.members = members
	s.lastUsed = time.Now()
	s.mu.Unlock()
	return nil
}

// RefreshLeaderboard refetches scores; failures keep the previous rows.
func (s *State) RefreshLeaderboard(ctx context.Context) error {
	leaders, err := s.fetcher.Leaderboard(ctx, s.token, s.projectID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.leaders = leaders
	s.lastUsed = time.Now()
	s.mu.Unlock()
	return nil
}

// Loaded reports whether a full load has completed at least once.
func (s *State) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Snapshot maps the cached board into view models.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	taskVMs := lo.Map(s.tasks, func(t upstream.Task, _ int) view.TaskVM {
		return view.TaskToVM(t, s.members)
	})
	return Snapshot{
		Columns: view.GroupTasks(taskVMs),
		Members: lo.Map(s.members, func(m upstream.Member, _ int) view.MemberVM {
			return view.MemberToVM(m)
		}),
		Messages: lo.Map(s.messages, func(m upstream.Message, _ int) view.MessageVM {
			return view.MessageToVM(m)
		}),
		Leaders: view.LeadersToVM(s.leaders),
	}
}

// Messages returns just the chat thread view.
func (s *State) Messages() []view.MessageVM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return lo.Map(s.messages, func(m upstream.Message, _ int) view.MessageVM {
		return view.MessageToVM(m)
	})
}

// Members returns the roster view.
func (s *State) Members() []view.MemberVM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return lo.Map(s.members, func(m upstream.Member, _ int) view.MemberVM {
		return view.MemberToVM(m)
	})
}

// Leaders returns the leaderboard view.
func (s *State) Leaders() []view.LeaderVM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return view.LeadersToVM(s.leaders)
}

// patchTask swaps in the backend's updated copy. Nothing changes locally if
// the id is no longer cached, which happens when a reload raced the patch.
func (s *State) patchTask(updated *upstream.Task) {
	if updated == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	for i := range s.tasks {
		if s.tasks[i].ID == updated.ID {
			s.tasks[i] = *updated
			return
		}
	}
}

func (s *State) refreshLeaderboard(ctx context.Context) {
	if err := s.RefreshLeaderboard(ctx); err != nil {
		logger.Warn().Err(err).Int64("project_id", s.projectID).Msg("leaderboard refresh failed")
	}
}

// sortThread orders the chat timestamp ascending, ties broken by id. The
// backend serves newest first; the thread renders oldest first.
func sortThread(msgs []upstream.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].Timestamp != msgs[j].Timestamp {
			return msgs[i].Timestamp < msgs[j].Timestamp
		}
		return msgs[i].ID < msgs[j].ID
	})
}

func (s *State) lastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
