// Package httperror defines the typed HTTP error the whole API speaks.
// Every non-2xx response serializes to the {statusCode, statusText}
// envelope, so handlers and repositories raise *Error values and the
// server's responder does the rest.
package httperror

import (
	"errors"
	"net/http"
)

type Error struct {
	StatusCode int    `json:"statusCode"`
	StatusText string `json:"statusText"`
}

func (e *Error) Error() string {
	return e.StatusText
}

// New builds a typed HTTP error. An empty message falls back to the
// standard reason phrase for the status code.
func New(statusCode int, message string) *Error {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &Error{StatusCode: statusCode, StatusText: message}
}

// BadRequest covers malformed input and upstream-provider failures.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized covers missing/invalid/expired sessions and ownership
// mismatches.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Conflict covers duplicate resources.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Internal covers misconfiguration and everything unexpected.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// From normalizes any error to a typed HTTP error. Untyped errors become
// a plain 500 so their detail is never leaked to the client.
func From(err error) *Error {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return New(http.StatusInternalServerError, "")
}
