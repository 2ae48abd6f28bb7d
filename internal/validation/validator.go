package validation

import (
	"strings"
	"unicode/utf8"
)

// Default title length limits, counted in characters after trimming
const (
	DefaultTitleMinLength = 1
	DefaultTitleMaxLength = 500
)

// Validator provides common validation utilities
type Validator struct {
	titleMinLength int
	titleMaxLength int
}

// NewValidator creates a new validator instance using the default limits
func NewValidator() *Validator {
	return NewValidatorWithLimits(DefaultTitleMinLength, DefaultTitleMaxLength)
}

// NewValidatorWithLimits creates a validator with explicit title length limits
func NewValidatorWithLimits(minLength, maxLength int) *Validator {
	return &Validator{
		titleMinLength: minLength,
		titleMaxLength: maxLength,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed character count is within the range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTitleLength checks a title against the configured limits
func (v *Validator) IsValidTitleLength(title string) bool {
	return v.IsValidStringLength(title, v.titleMinLength, v.titleMaxLength)
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TitleLimits returns the configured minimum and maximum title lengths
func (v *Validator) TitleLimits() (int, int) {
	return v.titleMinLength, v.titleMaxLength
}
