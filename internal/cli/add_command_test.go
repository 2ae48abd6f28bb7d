package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/client"
	"task-list/internal/domain"
	apperrors "task-list/internal/errors"
)

func TestAddCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("single argument", func(t *testing.T) {
		app, mock, out := setupTestAppWithMockAPI(t)
		mock.CreateTaskFunc = func(ctx context.Context, title string) (*domain.Task, error) {
			return &domain.Task{ID: 12, Title: title}, nil
		}

		err := NewAddCommand(app).Execute(ctx, []string{"Buy milk"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Buy milk"}, mock.Created())
		assert.Equal(t, "Added task #12: Buy milk\n", out.String())
	})

	t.Run("multiple words are joined", func(t *testing.T) {
		app, mock, _ := setupTestAppWithMockAPI(t)

		err := NewAddCommand(app).Execute(ctx, []string{"Call", "the", "plumber"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Call the plumber"}, mock.Created())
	})

	t.Run("title is trimmed before sending", func(t *testing.T) {
		app, mock, _ := setupTestAppWithMockAPI(t)

		err := NewAddCommand(app).Execute(ctx, []string{"  padded  "})
		require.NoError(t, err)
		assert.Equal(t, []string{"padded"}, mock.Created())
	})

	t.Run("special characters", func(t *testing.T) {
		app, mock, _ := setupTestAppWithMockAPI(t)

		err := NewAddCommand(app).Execute(ctx, []string{"Task with special chars: @#$% ✓"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Task with special chars: @#$% ✓"}, mock.Created())
	})

	t.Run("invalid titles never reach the api", func(t *testing.T) {
		tests := []struct {
			name    string
			args    []string
			wantMsg string
		}{
			{"whitespace only", []string{"   "}, "title is required"},
			{"too long", []string{strings.Repeat("a", 501)}, "title must be between 1 and 500 characters long"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				app, mock, out := setupTestAppWithMockAPI(t)

				err := NewAddCommand(app).Execute(ctx, tt.args)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantMsg)
				assert.Empty(t, mock.Created())
				assert.Empty(t, out.String())
			})
		}
	})

	t.Run("configured title limit", func(t *testing.T) {
		app, mock, _ := setupTestAppWithMockAPI(t)
		app.Config().Validation.TitleMaxLength = 3

		err := NewAddCommand(app).Execute(ctx, []string{"four"})
		require.Error(t, err)
		assert.Empty(t, mock.Created())
	})

	t.Run("server rejection", func(t *testing.T) {
		app, mock, _ := setupTestAppWithMockAPI(t)
		mock.CreateTaskFunc = func(ctx context.Context, title string) (*domain.Task, error) {
			return nil, &client.StatusError{Op: "create task", StatusCode: 500, Message: "failed to create task"}
		}

		err := NewAddCommand(app).Execute(ctx, []string{"Buy milk"})
		require.Error(t, err)
		assert.Equal(t, "failed to add task: failed to create task", err.Error())
	})

	t.Run("missing title", func(t *testing.T) {
		app, _, _ := setupTestAppWithMockAPI(t)

		err := NewAddCommand(app).Execute(ctx, nil)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})
}
