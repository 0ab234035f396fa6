package api

import (
	"errors"
	"net/http"
)

// Error describes a failed service call. The message shown to the user is
// the service's detail field when one was provided, otherwise the
// per-operation fallback.
type Error struct {
	// StatusCode is the HTTP status of the failed response, or 0 for
	// transport failures.
	StatusCode int

	// Detail is the service-provided message, if any.
	Detail string

	// Fallback is the generic per-operation message.
	Fallback string

	// Err is the underlying transport error, if any.
	Err error
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Fallback != "" {
		return e.Fallback
	}
	return http.StatusText(e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
