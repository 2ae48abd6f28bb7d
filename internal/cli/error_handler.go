package cli

import (
	stderrors "errors"
	"fmt"

	"task-list/internal/client"
	"task-list/internal/errors"
	"task-list/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	return fmt.Errorf("%s", eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	if err == nil {
		return "unknown error"
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	var statusErr *client.StatusError
	if stderrors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return fmt.Sprintf("server responded %d", statusErr.StatusCode)
	}

	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}

	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
