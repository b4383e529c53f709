package errors

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// New creates an AppError with an explicit status. Retryable follows the code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  code.Retryable(),
	}
}

func newError(code ErrorCode, message string) *AppError {
	return New(code, message, code.HTTPStatus())
}

// NotFound reports a missing resource as "<Resource> not found".
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return newError(ErrCodeNotFound, fmt.Sprintf("%s not found", capitalize(resource))).WithDetails(details)
}

// Conflict reports a write that clashes with existing state.
func Conflict(reason string) *AppError {
	return newError(ErrCodeConflict, reason)
}

// Precondition reports an operation whose referenced state is missing. It
// maps to 400 so the client sees the message rather than a routing-level 404.
func Precondition(message string) *AppError {
	return newError(ErrCodePreconditionFailed, message)
}

// InvalidInput reports invalid input on a single field.
func InvalidInput(field, reason string) *AppError {
	err := newError(ErrCodeInvalidInput, fmt.Sprintf("Invalid input: %s", reason))
	if field != "" {
		err.WithDetail("field", field)
	}
	return err
}

// Validation reports a request that failed validation as a whole.
func Validation(message string) *AppError {
	return newError(ErrCodeInvalidInput, message)
}

// MissingField reports an absent required field.
func MissingField(field string) *AppError {
	return newError(ErrCodeMissingField, fmt.Sprintf("Missing required field: %s", field)).
		WithDetail("field", field)
}

// Unauthorized reports a request without usable credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return newError(ErrCodeUnauthorized, reason)
}

// InvalidCredentials is returned for every failed login, whether the username
// is unknown or the password is wrong.
func InvalidCredentials() *AppError {
	return newError(ErrCodeInvalidCredentials, "Invalid username or password")
}

func TokenExpired() *AppError {
	return newError(ErrCodeTokenExpired, "Your session has expired. Please log in again.")
}

func InvalidToken() *AppError {
	return newError(ErrCodeInvalidToken, "Invalid authentication token. Please log in again.")
}

// ServiceUnavailable reports a dependency that is temporarily down.
func ServiceUnavailable(service string) *AppError {
	return newError(ErrCodeServiceUnavailable, fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service)).
		WithDetail("service", service)
}

// Timeout reports an operation that ran out of time.
func Timeout(operation string) *AppError {
	return newError(ErrCodeTimeout, "The request took too long. Please try again.").
		WithDetail("operation", operation)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return newError(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.").
		WithCause(cause)
}

func DatabaseError(cause error) *AppError {
	return newError(ErrCodeDatabaseError, "A database error occurred. Please try again.").WithCause(cause)
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Resource"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
