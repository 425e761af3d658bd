package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrServiceResponse = errors.New("service response error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ServiceResponseError reports a text-completion response that was missing
// or not parseable as JSON. Callers branch on ErrServiceResponse via errors.Is;
// the cause is kept for logs.
type ServiceResponseError struct {
	Reason string
	Cause  error
}

func (e *ServiceResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service response: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("service response: %s", e.Reason)
}

func (e *ServiceResponseError) Unwrap() error { return ErrServiceResponse }

// NewServiceResponseError creates a ServiceResponseError with an optional cause.
func NewServiceResponseError(reason string, cause error) *ServiceResponseError {
	return &ServiceResponseError{Reason: reason, Cause: cause}
}
