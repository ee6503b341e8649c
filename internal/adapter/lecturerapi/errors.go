package lecturerapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoResponse marks a transport-level failure: the request never produced
// an HTTP response (connection refused, DNS failure, timeout).
var ErrNoResponse = errors.New("lecturer api: no response")

// APIError is an application-level rejection: the API answered with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("lecturer api: status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("lecturer api: status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status indicates a transient failure: 429 or any 5xx.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}
