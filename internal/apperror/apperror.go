// Package apperror defines the application's error kinds.
//
// Every error a handler needs to reason about wraps one of the sentinels
// below, so the HTTP boundary can map it with errors.Is:
//
//	ErrValidation   → form re-render with messages, or 400 JSON
//	ErrNotFound     → rendered "not found" message
//	ErrUnauthorized → redirect to /login
//	anything else   → logged, 500 with a generic message
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
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

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized returns an AppError for a failed credential check.
// The message is safe to show to the client; it never says which part of
// the credentials was wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// FieldError is one entry of a validation failure: which input field was
// rejected and why. It is the shape of the JSON body returned by the
// paginated query endpoint.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors accumulates every FieldError found in one input, so a
// form can show all of its problems at once instead of only the first.
//
// It unwraps to ErrValidation, so errors.Is(err, ErrValidation) holds for
// both a single *AppError and a ValidationErrors list.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Reason)
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Reasons returns just the human-readable reasons, in order.
func (v ValidationErrors) Reasons() []string {
	out := make([]string, 0, len(v))
	for _, fe := range v {
		out = append(out, fe.Reason)
	}
	return out
}

// Messages extracts the user-facing messages from any validation or auth
// error. A ValidationErrors list yields every reason; an *AppError yields its
// single message. Other errors yield nil.
func Messages(err error) []string {
	var list ValidationErrors
	if errors.As(err, &list) {
		return list.Reasons()
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return []string{appErr.Message}
	}
	return nil
}
