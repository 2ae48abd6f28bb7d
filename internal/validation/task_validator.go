package validation

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with the default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithLimits creates a task validator with explicit title limits
func NewTaskValidatorWithLimits(minLength, maxLength int) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithLimits(minLength, maxLength),
	}
}

// ValidateTitle validates a task title for creation
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if !tv.validator.IsValidTitleLength(trimmed) {
		minLen, maxLen := tv.validator.TitleLimits()
		validationError.AddInvalidLengthError("title", trimmed, minLen, maxLen)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTitleField validates a decoded request field that may be absent
func (tv *TaskValidator) ValidateTitleField(title *string) error {
	if title == nil {
		validationError := NewValidationError()
		validationError.AddRequiredError("title")
		return validationError
	}
	return tv.ValidateTitle(*title)
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTitle returns the trimmed title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}
