package sqldb

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL backend behind a repository.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// sqlitePragmas are applied to every pooled SQLite file connection.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case DialectPostgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseURL resolves a database URL into a dialect and a driver DSN.
//
// postgres:// and postgresql:// URLs are passed to lib/pq untouched.
// sqlite://path, sqlite:path and bare paths open a SQLite file; ":memory:"
// opens an in-memory database.
func ParseURL(raw string) (Dialect, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("database url is empty")
	}

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DialectPostgres, raw, nil
	case strings.HasPrefix(raw, "sqlite://"):
		return DialectSQLite, sqliteDSN(strings.TrimPrefix(raw, "sqlite://")), nil
	case strings.HasPrefix(raw, "sqlite:"):
		return DialectSQLite, sqliteDSN(strings.TrimPrefix(raw, "sqlite:")), nil
	case strings.Contains(raw, "://"):
		scheme := raw[:strings.Index(raw, "://")]
		return "", "", fmt.Errorf("unsupported database scheme %q", scheme)
	default:
		return DialectSQLite, sqliteDSN(raw), nil
	}
}

// IsMemoryDSN reports whether a SQLite DSN refers to an in-memory database.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

func sqliteDSN(path string) string {
	switch {
	case path == "":
		return ":memory:"
	case IsMemoryDSN(path), strings.Contains(path, "?"):
		return path
	default:
		return path + "?" + sqlitePragmas
	}
}
