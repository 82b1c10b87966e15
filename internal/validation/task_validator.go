package validation

// TaskInput is the request body accepted by create and update. Absent and
// null fields both decode to nil.
type TaskInput struct {
	Name     *string `json:"name"`
	Priority *int32  `json:"priority"`
}

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// IsJSONContentType reports whether a request body is declared as JSON.
func (tv *TaskValidator) IsJSONContentType(contentType string) bool {
	return tv.validator.IsJSONContentType(contentType)
}

// DecodeTaskInput decodes a create or update body.
func (tv *TaskValidator) DecodeTaskInput(data []byte) (TaskInput, error) {
	var input TaskInput
	if err := tv.validator.DecodeJSON(data, &input); err != nil {
		return TaskInput{}, err
	}
	return input, nil
}

// ValidateTaskForCreation validates a task for creation. Only the name is
// required; any string, including the empty string, is accepted.
func (tv *TaskValidator) ValidateTaskForCreation(input TaskInput) error {
	validationError := NewValidationError()
	if input.Name == nil {
		validationError.AddRequiredError("name")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
