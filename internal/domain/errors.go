package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("unavailable")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalState    = errors.New("illegal state")
	ErrVetoed          = errors.New("change vetoed")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// VetoError reports that a listener or validator rejected a change to a bound
// property. It matches ErrVetoed and, when present, its cause.
type VetoError struct {
	Property string
	Cause    error
}

func (e *VetoError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Property, ErrVetoed.Error())
	}
	return fmt.Sprintf("%s: %s: %v", e.Property, ErrVetoed.Error(), e.Cause)
}

func (e *VetoError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrVetoed}
	}
	return []error{ErrVetoed, e.Cause}
}
