package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	stderrors "errors"
	"net"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"task-api/internal/errors"
)

// ErrorClass groups storage failures for logging and redacted responses.
type ErrorClass string

const (
	ClassNone       ErrorClass = ""
	ClassConstraint ErrorClass = "constraint"
	ClassTimeout    ErrorClass = "timeout"
	ClassConnection ErrorClass = "connection"
	ClassQuery      ErrorClass = "query"
)

// ClassifyError inspects a storage error, including driver specific error
// types from lib/pq and modernc sqlite.
func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}
	if stderrors.Is(err, context.DeadlineExceeded) || errors.IsErrorType(err, errors.ErrorTypeTimeout) {
		return ClassTimeout
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "23": // integrity_constraint_violation
			return ClassConstraint
		case "08": // connection_exception
			return ClassConnection
		case "57": // operator_intervention
			if pqErr.Code == "57014" { // query_canceled
				return ClassTimeout
			}
			return ClassConnection
		}
		return ClassQuery
	}

	var liteErr *sqlite.Error
	if stderrors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return ClassConstraint
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			return ClassConnection
		}
		return ClassQuery
	}

	if stderrors.Is(err, driver.ErrBadConn) || stderrors.Is(err, sql.ErrConnDone) {
		return ClassConnection
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return ClassConnection
	}

	return ClassQuery
}
