// Package highlevel ties the wire-level pieces together: one Context per
// connection composes the request parser, URI extractor and route table
// to dispatch HTTP requests, and wraps the frame codec for WebSocket
// read/send after an upgrade.

package highlevel

import (
	"github.com/netforge/wireframe/httpcore"
)

// Request is what a handler receives: the matched route pattern, the
// decoded method and path, and the parsed request.
type Request struct {
	Pattern string
	Method  string
	Path    string
	Headers []string
	Body    string
}

// Handler produces a response for a dispatched request.
type Handler func(*Request) *httpcore.Response

// WSHandler consumes one decoded WebSocket text message and returns the
// reply to send, or ok=false to send nothing.
type WSHandler func(text string) (reply string, ok bool)
