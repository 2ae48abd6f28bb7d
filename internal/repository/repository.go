// Package repository defines the storage contract for tasks. Implementations
// live in the sqlite and postgres subpackages.
package repository

import (
	"context"
	"time"
)

// Task is a persisted task row
type Task struct {
	ID        int64
	Title     string
	Position  int64
	CreatedAt time.Time
}

// Repository defines the interface for task storage operations
type Repository interface {
	// CreateTask inserts a task at the next free position. Reading the
	// current maximum position and inserting the row happen in a single
	// transaction, so concurrent calls never share a position.
	CreateTask(ctx context.Context, title string, createdAt time.Time) (*Task, error)

	// ListTasks returns every task ordered by position ascending
	ListTasks(ctx context.Context) ([]*Task, error)

	// GetTask returns a single task or a not found error
	GetTask(ctx context.Context, id int64) (*Task, error)

	// DeleteTask removes a task; a missing id yields a not found error
	DeleteTask(ctx context.Context, id int64) error

	// Close releases the underlying connections
	Close() error
}

// NextPosition returns the position following the current maximum. A nil
// maximum means the store is empty.
func NextPosition(max *int64) int64 {
	if max == nil {
		return 0
	}
	return *max + 1
}
