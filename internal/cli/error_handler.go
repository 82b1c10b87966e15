package cli

import (
	stderrors "errors"
	"fmt"

	"task-api/internal/config"
	"task-api/internal/errors"
	"task-api/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle turns an error into the message printed by the CLI. Storage errors
// keep the driver text since the reader is the operator.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	var configErr *config.ConfigError
	if stderrors.As(err, &configErr) {
		return fmt.Errorf("invalid configuration: %s", configErr.Error())
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if appErr, ok := errors.AsAppError(err); ok {
		if errors.IsStorageError(err) {
			return fmt.Errorf("failed to %s: %s: %s", operation, appErr.Message, errors.CauseMessage(err))
		}
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}
