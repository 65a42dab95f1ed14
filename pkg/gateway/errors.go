package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the one failure shape every call through the gateway
// produces. Downstream code never re-derives success checks from raw
// envelopes; it branches on this.
type Error struct {
	// Status is the HTTP status code, or 0 when the request never got
	// a response (transport failure, timeout).
	Status int
	// Message is the server-provided message, if any.
	Message string
	// Timeout marks calls that exceeded the read budget.
	Timeout bool
}

func (e *Error) Error() string {
	switch {
	case e.Timeout:
		return "request timed out"
	case e.Message != "":
		return e.Message
	case e.Status != 0:
		return fmt.Sprintf("request failed with status %d", e.Status)
	default:
		return "request failed"
	}
}

// IsTimeout reports whether err is a gateway timeout.
func IsTimeout(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Timeout
}

// IsAuthFailure reports whether err is a 401/403 from the server.
func IsAuthFailure(err error) bool {
	var ge *Error
	return errors.As(err, &ge) &&
		(ge.Status == http.StatusUnauthorized || ge.Status == http.StatusForbidden)
}

// ServerMessage extracts the server-provided message from err, or ""
// when there is none.
func ServerMessage(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return ""
}
