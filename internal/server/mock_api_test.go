package server

import (
	"context"

	"task-api/internal/domain"
	"task-api/internal/validation"
)

// mockAPI implements the API interface for testing. Unset hooks return zero
// values.
type mockAPI struct {
	listTasks  func(ctx context.Context) ([]domain.Task, error)
	createTask func(ctx context.Context, input validation.TaskInput) (*domain.CreatedTask, error)
	updateTask func(ctx context.Context, id int64, input validation.TaskInput) error
	deleteTask func(ctx context.Context, id int64) error

	calls int
}

func (m *mockAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	m.calls++
	if m.listTasks == nil {
		return nil, nil
	}
	return m.listTasks(ctx)
}

func (m *mockAPI) CreateTask(ctx context.Context, input validation.TaskInput) (*domain.CreatedTask, error) {
	m.calls++
	if m.createTask == nil {
		return &domain.CreatedTask{ID: 1}, nil
	}
	return m.createTask(ctx, input)
}

func (m *mockAPI) UpdateTask(ctx context.Context, id int64, input validation.TaskInput) error {
	m.calls++
	if m.updateTask == nil {
		return nil
	}
	return m.updateTask(ctx, id, input)
}

func (m *mockAPI) DeleteTask(ctx context.Context, id int64) error {
	m.calls++
	if m.deleteTask == nil {
		return nil
	}
	return m.deleteTask(ctx, id)
}

// failingAPI returns err from every operation.
func failingAPI(err error) *mockAPI {
	return &mockAPI{
		listTasks: func(context.Context) ([]domain.Task, error) { return nil, err },
		createTask: func(context.Context, validation.TaskInput) (*domain.CreatedTask, error) {
			return nil, err
		},
		updateTask: func(context.Context, int64, validation.TaskInput) error { return err },
		deleteTask: func(context.Context, int64) error { return err },
	}
}
