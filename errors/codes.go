package errors

import "net/http"

// ErrorCode is the machine-readable code sent to clients as "code".
type ErrorCode string

const (
	// 400: request body or path failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// 400: the request referenced state that does not exist, reported with a
	// message instead of a 404.
	ErrCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"

	// 401
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"

	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabaseError      ErrorCode = "DATABASE_ERROR"
)

type codeInfo struct {
	status    int
	retryable bool
}

var codes = map[ErrorCode]codeInfo{
	ErrCodeInvalidInput:       {http.StatusBadRequest, false},
	ErrCodeMissingField:       {http.StatusBadRequest, false},
	ErrCodePreconditionFailed: {http.StatusBadRequest, false},
	ErrCodeUnauthorized:       {http.StatusUnauthorized, false},
	ErrCodeInvalidCredentials: {http.StatusUnauthorized, false},
	ErrCodeTokenExpired:       {http.StatusUnauthorized, false},
	ErrCodeInvalidToken:       {http.StatusUnauthorized, false},
	ErrCodeNotFound:           {http.StatusNotFound, false},
	ErrCodeConflict:           {http.StatusConflict, false},
	ErrCodeServiceUnavailable: {http.StatusServiceUnavailable, true},
	ErrCodeTimeout:            {http.StatusGatewayTimeout, true},
	ErrCodeInternal:           {http.StatusInternalServerError, false},
	ErrCodeDatabaseError:      {http.StatusInternalServerError, true},
}

// HTTPStatus returns the status a code maps to; unknown codes map to 500.
func (c ErrorCode) HTTPStatus() int {
	if info, ok := codes[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether a client may retry a request that failed with c.
func (c ErrorCode) Retryable() bool {
	return codes[c].retryable
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return code.Retryable()
}
