package integrations

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single registry request, including reading the body.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the registry answers 404 for a resource.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures: connection errors, non-2xx
	// responses other than 404 and undecodable bodies.
	ErrNetwork = errors.New("network error")

	// ErrTimeout is returned when a request does not complete in time.
	ErrTimeout = errors.New("request timed out")
)

// StatusError reports a response status other than 2xx and 404. It matches
// [ErrNetwork] with errors.Is.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string { return fmt.Sprintf("HTTP %d", e.StatusCode) }

// Is reports whether target is ErrNetwork.
func (e *StatusError) Is(target error) bool { return target == ErrNetwork }

// RequestError is a transport or decode failure. Kind is ErrNetwork or
// ErrTimeout; Err is the underlying failure.
type RequestError struct {
	Kind error
	Err  error
}

func (e *RequestError) Error() string { return e.Kind.Error() + ": " + e.Err.Error() }

// Unwrap exposes both the sentinel and the underlying failure.
func (e *RequestError) Unwrap() []error { return []error{e.Kind, e.Err} }

// NewHTTPClient creates an HTTP client bounded by timeout.
// A non-positive timeout selects DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// PathEscape escapes s for use as a single URL path segment.
func PathEscape(s string) string { return url.PathEscape(s) }

// classify maps a transport or decode failure onto ErrTimeout or ErrNetwork.
func classify(err error) error {
	if isTimeout(err) {
		return &RequestError{Kind: ErrTimeout, Err: err}
	}
	return &RequestError{Kind: ErrNetwork, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
