package services

import (
	"context"

	"task-list/internal/domain"
	"task-list/internal/repository"
)

// TaskService handles the task lifecycle: creation at the end of the list,
// ordered listing and completion
type TaskService interface {
	// CreateTask validates the title and stores a task one position past
	// the current last task
	CreateTask(ctx context.Context, title string) (*domain.Task, error)

	// FindAll returns every task ordered by position. An empty list is not
	// an error.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// CompleteTask removes the task. A missing id yields a not found error
	// that callers can tell apart from storage failures.
	CompleteTask(ctx context.Context, id int64) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService TaskService
}

// NewServiceContainer wires every service to the given repository
func NewServiceContainer(repo repository.Repository, opts ...TaskServiceOption) *ServiceContainer {
	return &ServiceContainer{
		TaskService: NewTaskService(repo, opts...),
	}
}
