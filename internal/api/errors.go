// Package api provides the HTTP transport collaborator for the panel's
// content API: request construction against a single base URL, JSON and
// multipart bodies, and error classification into transport vs application
// failures. It deliberately performs no retry or backoff — the polling cache
// retries on its own schedule and mutation failures go straight back to the
// operator so form input survives for resubmission.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, api.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("api: bad request")
	ErrUnauthorized = errors.New("api: unauthorized")
	ErrForbidden    = errors.New("api: forbidden")
	ErrNotFound     = errors.New("api: not found")
	ErrConflict     = errors.New("api: conflict")
	ErrServerError  = errors.New("api: server error")
)

// APIError is an application failure: the server responded with a non-success
// status and a structured JSON body. Message is the human-readable title and
// ErrorMessage the detail, both surfaced verbatim to the operator.
type APIError struct {
	StatusCode   int
	RequestID    string
	Message      string
	ErrorMessage string
	Err          error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	if e.ErrorMessage != "" {
		return fmt.Sprintf("api: HTTP %d: %s: %s", e.StatusCode, e.Message, e.ErrorMessage)
	}

	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// TransportError is a connectivity failure: the request could not be
// completed at all (DNS, refused connection, timeout). There is no server
// response to interpret.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: request could not complete: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
// Subscribers use this to pick the blocking "no connectivity" notice over
// the dismissible application-error toast.
func IsTransport(err error) bool {
	var te *TransportError

	return errors.As(err, &te)
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
