// Package apierr defines the typed error carried by all business-logic
// failures: an HTTP status code, a status label, and a client-safe message.
package apierr

import "net/http"

// Status labels used in error response bodies. Client-caused failures are
// labelled "fail", server-side failures "error".
const (
	StatusFail  = "fail"
	StatusError = "error"
)

// Error is the uniform error raised by the validation and service layers.
// The boundary classifier passes its fields through to the response
// unchanged.
type Error struct {
	StatusCode int
	Status     string
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the given HTTP status code and message.
// Codes below 500 are labelled "fail", anything else "error".
func New(statusCode int, message string) *Error {
	status := StatusFail
	if statusCode >= http.StatusInternalServerError {
		status = StatusError
	}
	return &Error{
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
	}
}
