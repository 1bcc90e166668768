// Package api
//
// Common error types shared across the wireframe library.

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the protocol core. Wrap with %w and detect with
// errors.Is; callers decide whether to close the connection, answer with
// an error response, or drop the frame.
var (
	// ErrNullInput reports an absent required input (nil buffer or slice).
	ErrNullInput = errors.New("null input")

	// ErrMalformedRequest reports a request that cannot be split into
	// headers and body, or one that declares an unparsable Content-Length.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrFrameTooShort reports a WebSocket frame whose declared payload
	// length exceeds the bytes actually available in the buffer.
	ErrFrameTooShort = errors.New("frame too short")

	// ErrTransportClosed reports I/O on a closed transport.
	ErrTransportClosed = errors.New("transport is closed")
)

// MalformedRequestError wraps ErrMalformedRequest with the concrete reason.
func MalformedRequestError(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformedRequest, reason)
}
