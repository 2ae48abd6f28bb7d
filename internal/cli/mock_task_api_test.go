package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"task-list/internal/config"
	"task-list/internal/domain"
	"task-list/internal/logging"
)

// MockTaskAPI is a test double for the HTTP client
type MockTaskAPI struct {
	ListTasksFunc    func(ctx context.Context) ([]domain.Task, error)
	CreateTaskFunc   func(ctx context.Context, title string) (*domain.Task, error)
	CompleteTaskFunc func(ctx context.Context, id int64) error

	mu        sync.Mutex
	created   []string
	completed []int64
}

func (m *MockTaskAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx)
	}
	return []domain.Task{}, nil
}

func (m *MockTaskAPI) CreateTask(ctx context.Context, title string) (*domain.Task, error) {
	m.mu.Lock()
	m.created = append(m.created, title)
	m.mu.Unlock()

	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, title)
	}
	return &domain.Task{ID: 1, Title: title}, nil
}

func (m *MockTaskAPI) CompleteTask(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.completed = append(m.completed, id)
	m.mu.Unlock()

	if m.CompleteTaskFunc != nil {
		return m.CompleteTaskFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskAPI) Created() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.created...)
}

func (m *MockTaskAPI) Completed() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.completed...)
}

// setupTestAppWithMockAPI creates an app whose commands talk to a mock API
// and write to a buffer
func setupTestAppWithMockAPI(t *testing.T) (*App, *MockTaskAPI, *bytes.Buffer) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Database.Dir = t.TempDir()

	mock := &MockTaskAPI{}
	out := &bytes.Buffer{}
	app := NewApp(cfg,
		WithAPI(mock),
		WithOutput(out),
		WithAppLogger(logging.Discard()),
	)
	return app, mock, out
}
