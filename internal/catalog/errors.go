package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
)

const (
	ReasonTimeout    = "timeout"
	ReasonConnection = "connection"
)

// NetworkError means no response was received.
type NetworkError struct {
	Op     string
	Reason string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network %s: %v", e.Op, e.Reason, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request ran out of time.
func (e *NetworkError) Timeout() bool { return e.Reason == ReasonTimeout }

// APIError is a non-2xx response from the catalog.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Status, e.Message)
}

// ParseError covers unexpected payload shapes and malformed references.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func networkError(op string, err error) *NetworkError {
	reason := ReasonConnection
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		reason = ReasonTimeout
	}
	return &NetworkError{Op: op, Reason: reason, Err: err}
}

// isTransportError reports whether err came from the connection or the
// request context rather than from the payload.
func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
