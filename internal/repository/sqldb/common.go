package sqldb

import (
	"context"
	"database/sql"
	stderrors "errors"

	"task-api/internal/errors"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewDatabaseError(operation, err)
}

// RowsAffected reads the affected row count of a statement result
func RowsAffected(result sql.Result, operation string) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, HandleDatabaseError(operation+": get rows affected", err)
	}
	return rows, nil
}

// ExecuteReturningID executes an INSERT ... RETURNING statement and scans the generated key
func ExecuteReturningID(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, HandleDatabaseError(operation, err)
	}
	return id, nil
}

// Execute executes a statement and returns how many rows it touched. Zero
// rows is not an error.
func Execute(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}
	return RowsAffected(result, operation)
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}
