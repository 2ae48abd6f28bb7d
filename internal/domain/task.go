package domain

import "time"

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTask creates a new unsaved Task with the given title.
func NewTask(title string) Task {
	return Task{
		Title: title,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Title != "" && t.Position >= 0
}

// IsPersisted reports whether the task carries a server-assigned identity.
// Identities of zero or below are reserved for unsaved client-side tasks.
func (t Task) IsPersisted() bool {
	return t.ID > 0
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
