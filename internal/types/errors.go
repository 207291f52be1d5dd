package types

import (
	"fmt"
	"strings"
)

// FieldError is a validation failure attached to one form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError groups field-level failures; it is shown inline, never as a toast
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the first message recorded for a field
func (e *ValidationError) Field(name string) (string, bool) {
	for _, fe := range e.Errors {
		if fe.Field == name {
			return fe.Message, true
		}
	}
	return "", false
}
