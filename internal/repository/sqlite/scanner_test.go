package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/repository"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *string:
			*v = ts.data[i].(string)
		}
	}

	return nil
}

// TestRows implements the Rows interface for testing
type TestRows struct {
	rows    [][]interface{}
	current int
	err     error
	scanErr error
}

func (tr *TestRows) Next() bool {
	if tr.current >= len(tr.rows) {
		return false
	}
	tr.current++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	if tr.scanErr != nil {
		return tr.scanErr
	}
	scanner := &TestScanner{data: tr.rows[tr.current-1]}
	return scanner.Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *repository.Task
		expectError bool
	}{
		{
			name: "Valid task",
			scanner: &TestScanner{
				data: []interface{}{int64(1), "Buy milk", int64(0), "2026-03-01T09:30:00.123456789Z"},
			},
			expected: &repository.Task{
				ID:        1,
				Title:     "Buy milk",
				Position:  0,
				CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 123456789, time.UTC),
			},
		},
		{
			name: "Timestamp without fraction",
			scanner: &TestScanner{
				data: []interface{}{int64(7), "Walk dog", int64(3), "2026-03-01T09:30:00Z"},
			},
			expected: &repository.Task{
				ID:        7,
				Title:     "Walk dog",
				Position:  3,
				CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
			},
		},
		{
			name: "Unparseable timestamp",
			scanner: &TestScanner{
				data: []interface{}{int64(1), "x", int64(0), "yesterday"},
			},
			expectError: true,
		},
		{
			name:        "Scanner error",
			scanner:     &TestScanner{err: errors.New("scan failed")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTask(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScanTasks(t *testing.T) {
	t.Run("Multiple rows", func(t *testing.T) {
		rows := &TestRows{rows: [][]interface{}{
			{int64(1), "first", int64(0), "2026-03-01T09:30:00Z"},
			{int64(2), "second", int64(1), "2026-03-01T09:31:00Z"},
		}}

		tasks, err := ScanTasks(rows)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "first", tasks[0].Title)
		assert.Equal(t, int64(1), tasks[1].Position)
	})

	t.Run("No rows yields empty slice", func(t *testing.T) {
		tasks, err := ScanTasks(&TestRows{})
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("Scan error", func(t *testing.T) {
		rows := &TestRows{
			rows:    [][]interface{}{{int64(1), "first", int64(0), "2026-03-01T09:30:00Z"}},
			scanErr: errors.New("scan failed"),
		}
		_, err := ScanTasks(rows)
		assert.Error(t, err)
	})

	t.Run("Iteration error", func(t *testing.T) {
		_, err := ScanTasks(&TestRows{err: errors.New("iteration failed")})
		assert.Error(t, err)
	})
}
