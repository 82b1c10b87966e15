package validation

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ValidationErrorType represents the type of validation error
type ValidationErrorType string

const (
	ErrorTypeRequired    ValidationErrorType = "required"
	ErrorTypeInvalidType ValidationErrorType = "invalid_type"
)

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

// Error implements the error interface for FieldError
func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []FieldError
}

// Error implements the error interface for ValidationError
func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation error"
	}

	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}

	var messages []string
	for _, err := range ve.Errors {
		messages = append(messages, err.Error())
	}

	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if the ValidationError has any errors
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// AddError adds a new field error to the validation error
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

// AddRequiredError adds a required field error
func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, fmt.Sprintf("missing field `%s`", field), nil)
}

// AddInvalidTypeError adds an error for a JSON value of the wrong type
func (ve *ValidationError) AddInvalidTypeError(field string, value interface{}, expected string) {
	message := fmt.Sprintf("%s: invalid type %v, expected %s", field, value, expected)
	ve.AddError(field, ErrorTypeInvalidType, message, value)
}

// NewValidationError creates a new ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{
		Errors: make([]FieldError, 0),
	}
}

// GetUserFriendlyMessage returns a user-friendly error message
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Failed to deserialize the JSON body into the target type"
	}

	messages := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		messages = append(messages, err.Message)
	}

	return "Failed to deserialize the JSON body into the target type: " + strings.Join(messages, "; ")
}

// MalformedBodyError reports a request body that is not well-formed JSON.
type MalformedBodyError struct {
	Err error
}

func (e *MalformedBodyError) Error() string {
	return "Failed to parse the request body as JSON: " + e.Err.Error()
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Err
}

// IsMalformedBodyError checks if an error is a MalformedBodyError
func IsMalformedBodyError(err error) bool {
	var me *MalformedBodyError
	return stderrors.As(err, &me)
}
