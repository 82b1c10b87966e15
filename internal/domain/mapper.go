package domain

import (
	"task-api/internal/repository/sqldb"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqldb.Task {
	return sqldb.Task{
		ID:       domainTask.ID,
		Name:     domainTask.Name,
		Priority: domainTask.Priority,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqldb.Task) Task {
	return Task{
		ID:       dbTask.ID,
		Name:     dbTask.Name,
		Priority: dbTask.Priority,
	}
}

// FromDatabaseSlice converts database Tasks to domain Tasks. The result is
// never nil.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqldb.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task)
	}
	return domainTasks
}

// UpdateToDatabase converts a domain TaskUpdate to the column values written by the repository.
func (m *TaskMapper) UpdateToDatabase(update TaskUpdate) sqldb.TaskChanges {
	return sqldb.TaskChanges{
		Name:     update.Name,
		Priority: update.Priority,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
