package sqldb

import (
	"context"
	"database/sql"
	"time"

	"task-api/internal/errors"
	"task-api/internal/repository/sqldb/migrations"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DefaultMaxConnections bounds the pool when no option is given.
const DefaultMaxConnections = 16

// Repository defines the interface for database operations
type Repository interface {
	ListTasks(ctx context.Context) ([]*Task, error)
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, id int64, changes TaskChanges) (int64, error)
	DeleteTask(ctx context.Context, id int64) (int64, error)

	// Utility
	Close() error
}

// Options tunes the connection pool and statement execution.
type Options struct {
	MaxConnections int
	// QueryTimeout bounds each statement. Zero leaves deadlines to the caller's context.
	QueryTimeout time.Duration
}

// SQLRepository implements the Repository interface over a pooled *sql.DB
type SQLRepository struct {
	db           *sql.DB
	dialect      Dialect
	queryTimeout time.Duration
}

// NewWithOptions opens the database at databaseURL and applies pending migrations.
func NewWithOptions(ctx context.Context, databaseURL string, opts Options) (*SQLRepository, error) {
	repo, err := Open(ctx, databaseURL, opts)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(ctx, repo.db, string(repo.dialect)); err != nil {
		repo.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return repo, nil
}

// Open connects to the database without touching the schema.
func Open(ctx context.Context, databaseURL string, opts Options) (*SQLRepository, error) {
	dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, errors.NewDatabaseError("parse database url", err)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	maxConns := opts.MaxConnections
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	// Each connection to :memory: is a separate database.
	if dialect == DialectSQLite && IsMemoryDSN(dsn) {
		maxConns = 1
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("connect", err)
	}

	return &SQLRepository{db: db, dialect: dialect, queryTimeout: opts.QueryTimeout}, nil
}

// DB exposes the underlying pool for schema tooling.
func (r *SQLRepository) DB() *sql.DB {
	return r.db
}

// Dialect reports which backend the repository talks to.
func (r *SQLRepository) Dialect() Dialect {
	return r.dialect
}

// Close closes the database connection
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

func (r *SQLRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// ListTasks retrieves all tasks ordered by id
func (r *SQLRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT task_id, name, priority FROM tasks ORDER BY task_id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// CreateTask inserts a task and stores the generated id on it
func (r *SQLRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.dialect.Rebind(`INSERT INTO tasks (name, priority) VALUES (?, ?) RETURNING task_id`)
	id, err := ExecuteReturningID(ctx, r.db, "insert task", query, task.Name, NullableInt32(task.Priority))
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// UpdateTask overwrites both columns of the task with the given id and
// returns the number of rows touched.
func (r *SQLRepository) UpdateTask(ctx context.Context, id int64, changes TaskChanges) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.dialect.Rebind(`
	UPDATE tasks
	SET name = ?, priority = ?
	WHERE task_id = ?`)

	return Execute(ctx, r.db, "update task", query, NullableString(changes.Name), NullableInt32(changes.Priority), id)
}

// DeleteTask deletes a task by id and returns the number of rows removed
func (r *SQLRepository) DeleteTask(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.dialect.Rebind(`DELETE FROM tasks WHERE task_id = ?`)
	return Execute(ctx, r.db, "delete task", query, id)
}
