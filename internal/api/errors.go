package api

import (
	"errors"
	"fmt"
)

// ErrEmptyBody is returned when an endpoint that must answer with a body
// answered 2xx with nothing.
var ErrEmptyBody = errors.New("empty response body")

// HTTPError is a non-2xx answer from the backend. Body holds the raw error body.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// NetworkError wraps transport failures: no connectivity, reset connections,
// unreadable bodies.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func IsStatus(err error, code int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == code
}
