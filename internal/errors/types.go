package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType classifies an AppError by who has to act on it: the client for
// invalid input, the operator for database and timeout failures.
type ErrorType int

const (
	ErrorTypeDatabase ErrorType = iota + 1
	ErrorTypeInvalidInput
	ErrorTypeTimeout
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeDatabase:     "database",
	ErrorTypeInvalidInput: "invalid_input",
	ErrorTypeTimeout:      "timeout",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// AppError is a classified failure passed up to the HTTP and CLI layers.
// Attrs holds structured values (operation, task_id) that end up in logs.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Attrs   map[string]any
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// With records a structured attribute and returns e for chaining.
func (e *AppError) With(key string, value any) *AppError {
	if e.Attrs == nil {
		e.Attrs = make(map[string]any)
	}
	e.Attrs[key] = value
	return e
}

// LogArgs flattens the attributes into slog key/value pairs sorted by key.
func (e *AppError) LogArgs() []any {
	keys := make([]string, 0, len(e.Attrs))
	for key := range e.Attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2*len(keys))
	for _, key := range keys {
		args = append(args, key, e.Attrs[key])
	}
	return args
}
