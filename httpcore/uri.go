// Package httpcore
//
// Request-line extraction from raw header lines.

package httpcore

import (
	"regexp"
	"strings"
)

// recognizedMethods is the fixed set of method tokens accepted in a
// request line.
var recognizedMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"HEAD":    true,
	"OPTIONS": true,
	"TRACE":   true,
	"CONNECT": true,
}

// httpVersionRe matches the version token shape only. The numbers are
// deliberately unrestricted: HTTP/2.0 passes even though only 1.1
// semantics are implemented elsewhere.
var httpVersionRe = regexp.MustCompile(`^HTTP/\d+\.\d+$`)

// ExtractRequestURI scans header lines in order for the first line shaped
// like an HTTP request line and returns its method and path. The path is
// returned verbatim, query string included. Returns ok=false when lines
// is empty or no line matches.
func ExtractRequestURI(headerLines []string) (method, path string, ok bool) {
	for _, line := range headerLines {
		tokens := strings.Fields(strings.TrimSpace(line))
		if len(tokens) != 3 {
			continue
		}
		if !recognizedMethods[tokens[0]] {
			continue
		}
		if !httpVersionRe.MatchString(tokens[2]) {
			continue
		}
		return tokens[0], tokens[1], true
	}
	return "", "", false
}
