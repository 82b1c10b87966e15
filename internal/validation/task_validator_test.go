package validation

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func int32Ptr(v int32) *int32 { return &v }

func TestTaskValidator_DecodeTaskInput(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name     string
		body     string
		expected TaskInput
	}{
		{"name and priority", `{"name":"buy milk","priority":2}`, TaskInput{Name: strPtr("buy milk"), Priority: int32Ptr(2)}},
		{"name only", `{"name":"x"}`, TaskInput{Name: strPtr("x")}},
		{"explicit nulls", `{"name":null,"priority":null}`, TaskInput{}},
		{"empty object", `{}`, TaskInput{}},
		{"empty name", `{"name":""}`, TaskInput{Name: strPtr("")}},
		{"negative priority", `{"name":"n","priority":-7}`, TaskInput{Name: strPtr("n"), Priority: int32Ptr(-7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.DecodeTaskInput([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeTaskInput(%q) unexpected error: %v", tt.body, err)
			}
			if !equalStrPtr(got.Name, tt.expected.Name) {
				t.Errorf("Name = %v, want %v", got.Name, tt.expected.Name)
			}
			if !equalInt32Ptr(got.Priority, tt.expected.Priority) {
				t.Errorf("Priority = %v, want %v", got.Priority, tt.expected.Priority)
			}
		})
	}
}

func TestTaskValidator_DecodeTaskInput_Errors(t *testing.T) {
	validator := NewTaskValidator()

	if _, err := validator.DecodeTaskInput([]byte(`{"name":`)); !IsMalformedBodyError(err) {
		t.Errorf("expected MalformedBodyError, got %v", err)
	}
	var ve *ValidationError
	if _, err := validator.DecodeTaskInput([]byte(`{"priority":"2"}`)); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestTaskValidator_ValidateTaskForCreation(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       TaskInput
		expectError bool
	}{
		{"Valid name", TaskInput{Name: strPtr("Task 1")}, false},
		{"Valid name with priority", TaskInput{Name: strPtr("Task 1"), Priority: int32Ptr(1)}, false},
		{"Empty name accepted", TaskInput{Name: strPtr("")}, false},
		{"Missing name", TaskInput{}, true},
		{"Missing name with priority", TaskInput{Priority: int32Ptr(3)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTaskForCreation(tt.input)

			if !tt.expectError {
				if err != nil {
					t.Errorf("ValidateTaskForCreation() expected no error but got %v", err)
				}
				return
			}

			validationErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("ValidateTaskForCreation() expected ValidationError but got %T", err)
			}
			if len(validationErr.Errors) != 1 {
				t.Fatalf("expected 1 validation error, got %d", len(validationErr.Errors))
			}
			if validationErr.Errors[0].Type != ErrorTypeRequired || validationErr.Errors[0].Field != "name" {
				t.Errorf("unexpected field error %+v", validationErr.Errors[0])
			}
		})
	}
}

func TestTaskValidator_IsJSONContentType(t *testing.T) {
	validator := NewTaskValidator()

	if !validator.IsJSONContentType("application/json") {
		t.Error("IsJSONContentType(application/json) = false")
	}
	if validator.IsJSONContentType("text/plain") {
		t.Error("IsJSONContentType(text/plain) = true")
	}
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalInt32Ptr(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
