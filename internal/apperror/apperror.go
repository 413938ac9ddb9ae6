// Package apperror defines the domain errors shared by the repository,
// service and handler layers. Callers match them with errors.Is / errors.As;
// the HTTP layer maps them to status codes in one place (handler/response.go).
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	// ErrStorage marks a durable read or write that did not complete.
	// The operation may be retried; nothing was applied to the in-memory mirror.
	ErrStorage = errors.New("storage failure")
	// ErrPartialFanout marks a multi-record follow-up write where some
	// records were written and others were not.
	ErrPartialFanout = errors.New("partial fan-out failure")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Cause   error  // Optional: lower-level error this one reports
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Storage wraps a failed durable operation. op describes what was attempted,
// e.g. "saving entry". Domain errors (not found, validation) pass through
// unchanged so callers can still tell them apart.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &AppError{
		Err:     ErrStorage,
		Message: op + " failed",
		Cause:   err,
	}
}

// PartialFanoutError reports the entries that could not be re-saved while
// removing a deleted tag from them. The tag itself is gone either way.
type PartialFanoutError struct {
	TagID          string
	FailedEntryIDs []string
	Errs           []error
}

func (e *PartialFanoutError) Error() string {
	return fmt.Sprintf("tag %s deleted, but re-saving failed for %d entr%s: %s",
		e.TagID, len(e.FailedEntryIDs), plural(len(e.FailedEntryIDs)),
		strings.Join(e.FailedEntryIDs, ", "))
}

func (e *PartialFanoutError) Unwrap() []error {
	return append([]error{ErrPartialFanout}, e.Errs...)
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
