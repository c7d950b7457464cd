package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDecode wraps malformed response bodies.
var ErrDecode = errors.New("decode response")

// StatusError reports a non-2xx response. Message carries the server's
// errorMessage when the body was a failure envelope.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("no data received from server: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("no data received from server: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// APIError is a 2xx response whose envelope says success=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "api reported failure"
	}
	return "api reported failure: " + e.Message
}
