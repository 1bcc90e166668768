package httpcore

import (
	"strings"
	"testing"
)

func TestSerializeResponse_Nil(t *testing.T) {
	if got := SerializeResponse(nil); len(got) != 0 {
		t.Errorf("nil response serialized to %d bytes, want 0", len(got))
	}
}

func TestSerializeResponse_WithBody(t *testing.T) {
	resp := NewResponse(200, "OK")
	resp.AddHeader("Content-Type", "text/plain")
	resp.SetContent(NewRawContent([]byte("Hello, World!")))

	wire := string(SerializeResponse(resp))

	if !strings.HasPrefix(wire, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("status line wrong: %q", wire)
	}
	if !strings.HasSuffix(wire, "\r\n\r\nHello, World!") {
		t.Errorf("body framing wrong: %q", wire)
	}
	if strings.Count(wire, "Content-Length: 13\r\n") != 1 {
		t.Errorf("Content-Length: 13 should appear exactly once: %q", wire)
	}
}

func TestSerializeResponse_HeaderOrderAndDuplicates(t *testing.T) {
	resp := NewResponse(200, "OK")
	resp.AddHeader("Set-Thing", "first")
	resp.AddHeader("X-Other", "mid")
	resp.AddHeader("Set-Thing", "second")

	wire := string(SerializeResponse(resp))
	want := "HTTP/1.1 200 OK\r\nSet-Thing: first\r\nX-Other: mid\r\nSet-Thing: second\r\n\r\n"
	if wire != want {
		t.Errorf("wire = %q, want %q", wire, want)
	}
}

func TestSerializeResponse_NoContent(t *testing.T) {
	resp := NewResponse(204, "No Content")
	wire := string(SerializeResponse(resp))
	if !strings.HasSuffix(wire, "\r\n\r\n") {
		t.Errorf("headers not terminated by blank line: %q", wire)
	}
	if wire != "HTTP/1.1 204 No Content\r\n\r\n" {
		t.Errorf("wire = %q", wire)
	}
}

func TestSerializeResponse_ZeroLengthContent(t *testing.T) {
	resp := NewResponse(200, "OK")
	resp.SetContent(NewRawContent(nil))

	wire := string(SerializeResponse(resp))
	// Content-Length: 0 header is present, but nothing follows the blank
	// line.
	if !strings.Contains(wire, "Content-Length: 0\r\n") {
		t.Errorf("missing Content-Length: 0: %q", wire)
	}
	if !strings.HasSuffix(wire, "\r\n\r\n") {
		t.Errorf("bytes written after blank line for empty content: %q", wire)
	}
}

func TestSerializeResponse_UnknownLengthOmitsContentLength(t *testing.T) {
	resp := NewResponse(200, "OK")
	resp.SetContent(NewLazyJSONContent(map[string]bool{"streamed": true}))

	wire := string(SerializeResponse(resp))
	if strings.Contains(wire, "Content-Length") {
		t.Errorf("Content-Length emitted for unknown-length content: %q", wire)
	}
	if !strings.Contains(wire, "\r\n\r\n{") {
		t.Errorf("lazy body not written after blank line: %q", wire)
	}
}

func TestSerializeResponse_NotMutatedBySerialization(t *testing.T) {
	resp := NewResponse(200, "OK")
	resp.SetContent(NewRawContent([]byte("x")))

	before := len(resp.Headers)
	SerializeResponse(resp)
	SerializeResponse(resp)
	if len(resp.Headers) != before {
		t.Error("serialization mutated the response header collection")
	}
}
