package social

import (
	"fmt"
	"time"
)

// APIError is returned when the upstream answers with a non-2xx status
type APIError struct {
	StatusCode int
	Status     string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Status)
}

// TimeoutError is returned when a request exceeds the client timeout.
// The in-flight request is cancelled before this error is returned.
type TimeoutError struct {
	Path    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return "Request timed out"
}

// NetworkError wraps any other failure to obtain a usable response:
// transport errors, caller cancellation, unreadable or undecodable bodies.
type NetworkError struct {
	Path string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s: %v", e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
