// Package tasklist keeps the client-side task list and applies optimistic
// updates to it. Every mutation is split into a Begin step, applied before
// the request is sent, and a Resolve step, applied when the response
// arrives. A Controller is not safe for concurrent use; callers drive it from
// a single event loop.
package tasklist

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/logging"
)

// API is the subset of the HTTP client the controller needs
type API interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, title string) (*domain.Task, error)
	CompleteTask(ctx context.Context, id int64) error
}

// Pending describes a submission in flight
type Pending struct {
	TempID int64
	Title  string
}

// PendingCompletion describes a completion in flight. The task and its
// index are kept so a failed request can put it back.
type PendingCompletion struct {
	Task  domain.Task
	Index int
}

// Controller holds the ordered task list shown to the user
type Controller struct {
	tasks      []domain.Task
	nextTempID int64
	logger     *log.Logger
}

// New creates an empty controller. A nil logger discards output.
func New(logger *log.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		tasks:      []domain.Task{},
		nextTempID: -1,
		logger:     logger,
	}
}

// Tasks returns a copy of the current list
func (c *Controller) Tasks() []domain.Task {
	out := make([]domain.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Len returns the number of visible tasks
func (c *Controller) Len() int {
	return len(c.tasks)
}

// IsPending reports whether id belongs to a task not yet confirmed by the
// server
func (c *Controller) IsPending(id int64) bool {
	return id <= 0 && c.indexOf(id) >= 0
}

// ApplyLoad replaces the list with the server's result. A failed load
// leaves the list as it was and is only logged.
func (c *Controller) ApplyLoad(tasks []domain.Task, err error) {
	if err != nil {
		c.logger.Error("failed to load tasks", "err", err)
		return
	}
	c.tasks = make([]domain.Task, len(tasks))
	copy(c.tasks, tasks)
}

// BeginSubmit appends a placeholder task with a temporary negative id and
// returns what is needed to resolve it later
func (c *Controller) BeginSubmit(title string, now time.Time) Pending {
	tempID := c.nextTempID
	c.nextTempID--

	c.tasks = append(c.tasks, domain.Task{
		ID:        tempID,
		Title:     title,
		Position:  int64(len(c.tasks)),
		CreatedAt: now.UTC(),
	})

	return Pending{TempID: tempID, Title: title}
}

// ResolveSubmit swaps the placeholder for the saved task in place, or drops
// it when the request failed. Failures are only logged.
func (c *Controller) ResolveSubmit(tempID int64, saved *domain.Task, err error) {
	idx := c.indexOf(tempID)

	if err != nil || saved == nil {
		if err == nil {
			err = errors.NewInternalError("create task")
		}
		c.logger.Error("failed to create task", "temp_id", tempID, "err", err)
		if idx >= 0 {
			c.removeAt(idx)
		}
		return
	}

	if idx < 0 {
		// Placeholder gone, most likely replaced by a reload
		c.logger.Debug("placeholder no longer present", "temp_id", tempID, "id", saved.ID)
		return
	}
	c.tasks[idx] = *saved
}

// BeginComplete removes a persisted task from the list. It returns false
// when the id is unknown or still a placeholder.
func (c *Controller) BeginComplete(id int64) (PendingCompletion, bool) {
	if id <= 0 {
		return PendingCompletion{}, false
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return PendingCompletion{}, false
	}

	p := PendingCompletion{Task: c.tasks[idx], Index: idx}
	c.removeAt(idx)
	return p, true
}

// ResolveComplete puts the task back when the request failed. A not found
// answer means the task is already gone and counts as success.
func (c *Controller) ResolveComplete(p PendingCompletion, err error) {
	if err == nil || errors.IsNotFound(err) {
		return
	}

	c.logger.Error("failed to complete task", "id", p.Task.ID, "err", err)
	if c.indexOf(p.Task.ID) >= 0 {
		return
	}

	idx := p.Index
	if idx > len(c.tasks) {
		idx = len(c.tasks)
	}
	c.tasks = append(c.tasks, domain.Task{})
	copy(c.tasks[idx+1:], c.tasks[idx:])
	c.tasks[idx] = p.Task
}

// Load fetches the list and applies it
func (c *Controller) Load(ctx context.Context, api API) {
	tasks, err := api.ListTasks(ctx)
	c.ApplyLoad(tasks, err)
}

// Submit runs a whole submission synchronously. It returns the task as it
// ended up in the list, or nil when the submission was rolled back.
func (c *Controller) Submit(ctx context.Context, api API, title string) *domain.Task {
	p := c.BeginSubmit(title, time.Now())
	saved, err := api.CreateTask(ctx, p.Title)
	c.ResolveSubmit(p.TempID, saved, err)
	if err != nil {
		return nil
	}
	return saved
}

// Complete runs a whole completion synchronously
func (c *Controller) Complete(ctx context.Context, api API, id int64) bool {
	p, ok := c.BeginComplete(id)
	if !ok {
		return false
	}
	err := api.CompleteTask(ctx, id)
	c.ResolveComplete(p, err)
	return err == nil || errors.IsNotFound(err)
}

func (c *Controller) indexOf(id int64) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) removeAt(idx int) {
	c.tasks = append(c.tasks[:idx], c.tasks[idx+1:]...)
}
