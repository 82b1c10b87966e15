package sqldb

// Task is a row of the tasks table.
type Task struct {
	ID       int64
	Name     string
	Priority *int32 // Using pointer to allow NULL values
}

// TaskChanges holds the column values written by an update. Nil fields are
// written as NULL, not skipped.
type TaskChanges struct {
	Name     *string
	Priority *int32
}
