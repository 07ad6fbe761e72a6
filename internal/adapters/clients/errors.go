// Package clients provides the resilient HTTP client used by downstream adapters.
package clients

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client errors are infrastructure failures. The acl package translates them
// into domain errors before they reach the application layer.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last attempt's error once retries are exhausted.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrDecode is returned when a 2xx reply is not the expected JSON.
	ErrDecode = errors.New("decoding response")
)

// StatusError is a non-2xx reply. Body holds the start of the response for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// newStatusError drains and closes resp.Body.
func newStatusError(resp *http.Response) *StatusError {
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}

	return 0
}
