// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy for the organization lifecycle
// service. Every failure a handler returns to a caller carries a stable
// machine-checkable code and an HTTP status class; internal error detail is
// kept on the wrapped error for server-side logging only.
package apperr

import (
	"errors"
	"net/http"
)

// Code identifies a failure class to callers.
type Code string

const (
	CodeValidation        Code = "validation_error"
	CodeDuplicateName     Code = "duplicate_name"
	CodeDuplicateEmail    Code = "duplicate_email"
	CodeNotFound          Code = "not_found"
	CodeForbidden         Code = "forbidden"
	CodeUnauthorized      Code = "unauthorized"
	CodeMigrationConflict Code = "migration_conflict"
	CodeRateLimited       Code = "rate_limited"
	CodeStorage           Code = "storage_failure"
)

// Error pairs a failure class with a caller-safe message. The wrapped error
// (if any) is never echoed to the caller.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the failure class to its response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeDuplicateName, CodeDuplicateEmail:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeMigrationConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports malformed input, caught before any mutation.
func Validation(msg string, err error) *Error {
	return &Error{Code: CodeValidation, Message: msg, Err: err}
}

// DuplicateName reports a unique-constraint violation on an organization name.
func DuplicateName(name string) *Error {
	return &Error{Code: CodeDuplicateName, Message: "organization '" + name + "' already exists"}
}

// DuplicateEmail reports a unique-constraint violation on an admin email.
func DuplicateEmail() *Error {
	return &Error{Code: CodeDuplicateEmail, Message: "an admin with this email already exists"}
}

// NotFound reports a lookup miss.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// Forbidden reports an authenticated caller touching the wrong tenant.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// Unauthorized reports a missing, invalid, or expired token. The message is
// deliberately generic so callers cannot distinguish why validation failed.
func Unauthorized() *Error {
	return &Error{Code: CodeUnauthorized, Message: "could not validate credentials"}
}

// MigrationConflict reports a rename whose compensation ran: the
// organization's data was not lost, but the rename did not apply.
func MigrationConflict(msg string, err error) *Error {
	return &Error{Code: CodeMigrationConflict, Message: msg, Err: err}
}

// RateLimited reports a request rejected by a rate limiter.
func RateLimited(msg string) *Error {
	return &Error{Code: CodeRateLimited, Message: msg}
}

// Storage reports a storage-layer failure (connectivity, timeout). The
// orchestrator performs no retries; retrying is the caller's decision.
func Storage(msg string, err error) *Error {
	return &Error{Code: CodeStorage, Message: msg, Err: err}
}

// From extracts an *Error from err, wrapping unclassified errors as storage
// failures with a generic message.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Storage("internal error", err)
}
