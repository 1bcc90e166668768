// Package protocol
//
// RFC6455 WebSocket handshake pieces: accept-key computation and
// validation of the client's upgrade headers. Works directly on the raw
// header lines produced by the request parser, no net/http involved.

package protocol

import (
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/netforge/wireframe/httpcore"
)

// WebSocketGUID is the fixed GUID from RFC6455 section 1.3.
const WebSocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

const (
	headerConnection      = "connection"
	headerUpgrade         = "upgrade"
	headerSecWebSocketKey = "sec-websocket-key"
)

var (
	ErrInvalidUpgradeHeaders = errors.New("invalid WebSocket upgrade headers")
	ErrMissingWebSocketKey   = errors.New("missing Sec-WebSocket-Key header")
)

// ComputeAcceptKey derives the Sec-WebSocket-Accept value from the
// client's Sec-WebSocket-Key per RFC6455 section 1.3.
func ComputeAcceptKey(clientKey string) string {
	hash := sha1.Sum([]byte(clientKey + WebSocketGUID))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// IsUpgradeRequest reports whether the raw header lines ask for a
// WebSocket upgrade.
func IsUpgradeRequest(headerLines []string) bool {
	return containsToken(headerValue(headerLines, headerUpgrade), "websocket")
}

// ValidateUpgradeHeaders checks the raw header lines for a well-formed
// upgrade request and returns the client's Sec-WebSocket-Key.
func ValidateUpgradeHeaders(headerLines []string) (string, error) {
	connection := headerValue(headerLines, headerConnection)
	upgrade := headerValue(headerLines, headerUpgrade)
	if !containsToken(connection, "upgrade") || !containsToken(upgrade, "websocket") {
		return "", ErrInvalidUpgradeHeaders
	}
	key := headerValue(headerLines, headerSecWebSocketKey)
	if key == "" {
		return "", ErrMissingWebSocketKey
	}
	return key, nil
}

// BuildUpgradeResponse constructs the 101 Switching Protocols response
// completing the handshake for the given client key.
func BuildUpgradeResponse(clientKey string) *httpcore.Response {
	resp := httpcore.NewResponse(101, "Switching Protocols")
	resp.AddHeader("Upgrade", "websocket")
	resp.AddHeader("Connection", "Upgrade")
	resp.AddHeader("Sec-WebSocket-Accept", ComputeAcceptKey(clientKey))
	return resp
}

// headerValue scans raw header lines for the named header, matching the
// name case-insensitively, and returns the trimmed value of the first
// occurrence.
func headerValue(headerLines []string, name string) string {
	for _, line := range headerLines {
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(line[:idx]), name) {
			return strings.TrimSpace(line[idx+1:])
		}
	}
	return ""
}

// containsToken reports whether the comma-separated header value holds
// the token, case-insensitively.
func containsToken(headerVal, token string) bool {
	for _, part := range strings.Split(headerVal, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}
