package domain

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID       int64  `json:"task_id"`
	Name     string `json:"name"`
	Priority *int32 `json:"priority"`
}

// NewTask creates a new Task with the given name and optional priority.
func NewTask(name string, priority *int32) Task {
	return Task{
		Name:     name,
		Priority: priority,
	}
}

// HasPriority reports whether a priority is set.
func (t Task) HasPriority() bool {
	return t.Priority != nil
}

// TaskUpdate carries the values an update writes. A nil field means the
// column is set to NULL.
type TaskUpdate struct {
	Name     *string
	Priority *int32
}

// CreatedTask is the payload returned after a successful create.
type CreatedTask struct {
	ID int64 `json:"task_id"`
}
