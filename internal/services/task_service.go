package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/logging"
	"task-list/internal/repository"
	"task-list/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	logger        *log.Logger
	now           func() time.Time
}

// TaskServiceOption customizes a task service
type TaskServiceOption func(*taskServiceImpl)

// WithLogger sets the logger storage failures are reported to
func WithLogger(logger *log.Logger) TaskServiceOption {
	return func(t *taskServiceImpl) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithValidator replaces the default title validator
func WithValidator(v *validation.TaskValidator) TaskServiceOption {
	return func(t *taskServiceImpl) {
		if v != nil {
			t.taskValidator = v
		}
	}
}

// WithClock sets the source of creation timestamps
func WithClock(now func() time.Time) TaskServiceOption {
	return func(t *taskServiceImpl) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.Repository, opts ...TaskServiceOption) TaskService {
	t := &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
		logger:        logging.Discard(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CreateTask creates a new task at the end of the list
func (t *taskServiceImpl) CreateTask(ctx context.Context, title string) (*domain.Task, error) {
	trimmedTitle, err := t.taskValidator.GetValidTitle(title)
	if err != nil {
		return nil, errors.NewValidationError("invalid task title", err)
	}

	record, err := t.repo.CreateTask(ctx, trimmedTitle, t.now().UTC())
	if err != nil {
		t.logger.Error("failed to create task", "title", trimmedTitle, "err", err)
		return nil, errors.NewInternalError("create task")
	}

	task := t.mapper.Task.FromRecord(*record)
	return &task, nil
}

// FindAll returns all tasks ordered by position
func (t *taskServiceImpl) FindAll(ctx context.Context) ([]*domain.Task, error) {
	records, err := t.repo.ListTasks(ctx)
	if err != nil {
		t.logger.Error("failed to retrieve tasks", "err", err)
		return nil, errors.NewInternalError("retrieve tasks")
	}

	return t.mapper.Task.FromRecordSlice(records), nil
}

// CompleteTask deletes the task with the given id
func (t *taskServiceImpl) CompleteTask(ctx context.Context, id int64) error {
	err := t.repo.DeleteTask(ctx, id)
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}

	t.logger.Error("failed to complete task", "id", id, "err", err)
	return errors.NewInternalError("complete task")
}
