package sqlite

import (
	"task-list/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row. Columns are expected in
// the order id, title, position, created_at.
func ScanTask(scanner Scanner) (*repository.Task, error) {
	task := &repository.Task{}
	var createdAt string

	if err := scanner.Scan(&task.ID, &task.Title, &task.Position, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = parsed

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*repository.Task, error) {
	tasks := make([]*repository.Task, 0)
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
