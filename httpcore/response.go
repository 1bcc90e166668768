// Package httpcore
//
// Outgoing response model and wire serialization.

package httpcore

import (
	"bytes"
	"fmt"
	"strconv"
)

// Header is one name/value pair. Responses keep headers as an ordered
// slice: insertion order is emission order and duplicates are allowed.
type Header struct {
	Name  string
	Value string
}

// Response models an outgoing HTTP response. It is mutable until
// serialized; serialization does not mutate it.
type Response struct {
	Version    string
	StatusCode int
	Reason     string
	Headers    []Header
	Content    Content
}

// NewResponse constructs an HTTP/1.1 response with the given status.
func NewResponse(code int, reason string) *Response {
	return &Response{
		Version:    "1.1",
		StatusCode: code,
		Reason:     reason,
	}
}

// AddHeader appends a header, preserving order and permitting duplicates.
func (r *Response) AddHeader(name, value string) {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
}

// SetContent attaches body content. Content-Length is added only when
// the variant knows its size up front; unknown-length content relies on
// connection framing instead.
func (r *Response) SetContent(c Content) {
	r.Content = c
	if c == nil {
		return
	}
	if n, known := c.Length(); known {
		r.AddHeader("Content-Length", strconv.FormatInt(n, 10))
	}
}

// SerializeResponse renders resp into exact wire bytes: status line,
// headers in insertion order, blank line, then the content bytes when
// content is present and non-empty. A nil response yields an empty
// slice.
func SerializeResponse(resp *Response) []byte {
	if resp == nil {
		return []byte{}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/%s %d %s\r\n", resp.Version, resp.StatusCode, resp.Reason)
	for _, h := range resp.Headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.Name, h.Value)
	}
	buf.WriteString("\r\n")

	if resp.Content != nil {
		if n, known := resp.Content.Length(); !known || n > 0 {
			// The target is in-memory, so only serialization can fail;
			// a failed variant contributes no body bytes.
			resp.Content.WriteTo(&buf, 0)
		}
	}
	return buf.Bytes()
}
