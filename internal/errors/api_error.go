package errors

import (
	stderrors "errors"
	"net/http"
)

// ErrNetwork marks failures that never produced a backend response. They are
// transient and safe to retry.
var ErrNetwork = stderrors.New("network unavailable")

type APIError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func New(status int, code, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func Internal(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return New(http.StatusInternalServerError, "internal_error", message)
}

func BadRequest(code, message string) *APIError {
	return New(http.StatusBadRequest, code, message)
}

// Validation is a locally detected input problem. Status is zero because the
// request was never sent.
func Validation(code, message string) *APIError {
	return New(0, code, message)
}

func Unauthorized(message string) *APIError {
	if message == "" {
		message = "unauthorized"
	}
	return New(http.StatusUnauthorized, "unauthorized", message)
}

func Forbidden(message string) *APIError {
	if message == "" {
		message = "forbidden"
	}
	return New(http.StatusForbidden, "forbidden", message)
}

func NotFound(code, message string) *APIError {
	return New(http.StatusNotFound, code, message)
}

func Conflict(code, message string, details interface{}) *APIError {
	err := New(http.StatusConflict, code, message)
	err.Details = details
	return err
}

func TooManyRequests(message string) *APIError {
	if message == "" {
		message = "too many requests"
	}
	return New(http.StatusTooManyRequests, "rate_limited", message)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func IsValidation(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.Status == 0
}

// IsTransient reports whether retrying the same call may succeed.
func IsTransient(err error) bool {
	if stderrors.Is(err, ErrNetwork) {
		return true
	}
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= http.StatusInternalServerError || apiErr.Status == http.StatusTooManyRequests
}
