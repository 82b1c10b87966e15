package api

import (
	"context"
	"log/slog"

	"task-api/internal/domain"
	"task-api/internal/errors"
	"task-api/internal/repository/sqldb"
	"task-api/internal/validation"
)

// API defines the interface for all task operations.
type API interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, input validation.TaskInput) (*domain.CreatedTask, error)
	UpdateTask(ctx context.Context, id int64, input validation.TaskInput) error
	DeleteTask(ctx context.Context, id int64) error
}

type apiImpl struct {
	repo          sqldb.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	logger        *slog.Logger
}

// New creates a new API instance.
func New(repo sqldb.Repository, logger *slog.Logger) API {
	if logger == nil {
		logger = slog.Default()
	}
	return &apiImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
		logger:        logger,
	}
}

func (a *apiImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	dbTasks, err := a.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return a.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

func (a *apiImpl) CreateTask(ctx context.Context, input validation.TaskInput) (*domain.CreatedTask, error) {
	// Validate input
	if err := a.taskValidator.ValidateTaskForCreation(input); err != nil {
		return nil, err
	}

	task := domain.NewTask(*input.Name, input.Priority)
	dbTask := a.mapper.Task.ToDatabase(task)
	if err := a.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	a.logger.DebugContext(ctx, "task created",
		"task_id", dbTask.ID,
		"has_priority", task.HasPriority())
	return &domain.CreatedTask{ID: dbTask.ID}, nil
}

// UpdateTask overwrites both columns of the task. Fields absent from input
// are written as NULL, and an id that matches no row is not an error.
func (a *apiImpl) UpdateTask(ctx context.Context, id int64, input validation.TaskInput) error {
	update := domain.TaskUpdate{Name: input.Name, Priority: input.Priority}

	affected, err := a.repo.UpdateTask(ctx, id, a.mapper.Task.UpdateToDatabase(update))
	if err != nil {
		return withTaskID(err, id)
	}
	if affected == 0 {
		a.logger.DebugContext(ctx, "update matched no task", "task_id", id)
	}
	return nil
}

// DeleteTask removes the task. Deleting an id that matches no row is not an error.
func (a *apiImpl) DeleteTask(ctx context.Context, id int64) error {
	affected, err := a.repo.DeleteTask(ctx, id)
	if err != nil {
		return withTaskID(err, id)
	}
	if affected == 0 {
		a.logger.DebugContext(ctx, "delete matched no task", "task_id", id)
	}
	return nil
}

// withTaskID records the target id on a storage error so the failure log
// names the row.
func withTaskID(err error, id int64) error {
	if appErr, ok := errors.AsAppError(err); ok {
		appErr.With("task_id", id)
	}
	return err
}
