package domain

import (
	"task-list/internal/repository"
)

// TaskMapper handles conversion between domain and storage Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to a storage record.
func (m *TaskMapper) ToRecord(domainTask Task) repository.Task {
	return repository.Task{
		ID:        domainTask.ID,
		Title:     domainTask.Title,
		Position:  domainTask.Position,
		CreatedAt: domainTask.CreatedAt,
	}
}

// FromRecord converts a storage record to a domain Task.
func (m *TaskMapper) FromRecord(record repository.Task) Task {
	return Task{
		ID:        record.ID,
		Title:     record.Title,
		Position:  record.Position,
		CreatedAt: record.CreatedAt.UTC(),
	}
}

// FromRecordSlice converts storage records to domain Tasks, preserving order.
// The result is never nil so an empty store serializes as an empty list.
func (m *TaskMapper) FromRecordSlice(records []*repository.Task) []*Task {
	tasks := make([]*Task, 0, len(records))
	for _, record := range records {
		task := m.FromRecord(*record)
		tasks = append(tasks, &task)
	}
	return tasks
}

// Mapper provides access to all domain mappers.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper with all domain mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
