package sqldb

import "database/sql"

// NullableString converts an optional string into a query argument, returning nil for NULL
func NullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// NullableInt32 converts an optional integer into a query argument, returning nil for NULL
func NullableInt32(n *int32) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

// Int32FromDB converts a scanned nullable integer into an optional value
func Int32FromDB(n sql.NullInt32) *int32 {
	if !n.Valid {
		return nil
	}
	v := n.Int32
	return &v
}
