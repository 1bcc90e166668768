// Package httpcore implements the HTTP/1.1 wire layer by hand: request
// splitting, request-line extraction, response modeling and serialization.
//
// The parser operates on a fully received buffer. It does not stream and
// it does not wait for more bytes; callers needing incremental bodies
// must sit above this layer.

package httpcore

import (
	"strconv"
	"strings"

	"github.com/netforge/wireframe/api"
)

const headerBodySeparator = "\r\n\r\n"

// SplitHeadersAndBody splits a raw request buffer into its header lines
// and body.
//
// The header section is split on CRLF verbatim: no trimming, no blank
// line filtering. An empty header section yields a single empty string,
// not an empty slice.
//
// The body is populated only when a parsable Content-Length header is
// present and at least that many bytes follow the separator; it is then
// exactly Content-Length bytes, excess trailing bytes dropped. A missing
// Content-Length or a shorter-than-declared remainder yields an empty
// body. Partial bodies are never returned.
func SplitHeadersAndBody(raw []byte) ([]string, string, error) {
	if raw == nil {
		return nil, "", api.ErrNullInput
	}

	text := string(raw)
	sep := strings.Index(text, headerBodySeparator)
	if sep < 0 {
		return nil, "", api.MalformedRequestError("no separator")
	}

	headers := strings.Split(text[:sep], "\r\n")
	trailing := text[sep+len(headerBodySeparator):]

	contentLength, hasLength, err := parseContentLength(headers)
	if err != nil {
		return nil, "", err
	}

	body := ""
	if hasLength && len(trailing) >= contentLength {
		body = trailing[:contentLength]
	}
	return headers, body, nil
}

// parseContentLength scans header lines for the first Content-Length
// header and parses its value as a non-negative integer.
func parseContentLength(headers []string) (int, bool, error) {
	const name = "content-length:"
	for _, line := range headers {
		if len(line) < len(name) || !strings.EqualFold(line[:len(name)], name) {
			continue
		}
		value := strings.TrimSpace(line[len(name):])
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return 0, false, api.MalformedRequestError("invalid content-length")
		}
		return n, true, nil
	}
	return 0, false, nil
}
