// Package router compiles path patterns with :name placeholder segments
// into anchored matchers and performs first-match lookup.
//
// The route table is an ordered slice, not a map: first-match semantics
// are only meaningful with a defined iteration order, so lookup walks
// routes in registration order, deterministically.

package router

import (
	"regexp"
	"strings"
)

// ConvertToRegex turns a route pattern into an anchored regular
// expression. Each :name segment becomes a run of one or more non-slash
// characters; literal segments are quoted and matched verbatim.
//
//	/users/:id/details -> ^/users/[^/]+/details$
func ConvertToRegex(pattern string) string {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = `[^/]+`
		} else {
			parts[i] = regexp.QuoteMeta(part)
		}
	}
	return "^" + strings.Join(parts, "/") + "$"
}

// MatchEndpoint returns the first pattern in slice order whose compiled
// matcher accepts path. A miss is a normal outcome, not an error.
func MatchEndpoint(patterns []string, path string) (string, bool) {
	for _, pattern := range patterns {
		re, err := regexp.Compile(ConvertToRegex(pattern))
		if err != nil {
			continue
		}
		if re.MatchString(path) {
			return pattern, true
		}
	}
	return "", false
}

// route pairs a registered pattern with its compiled matcher and handler.
type route[H any] struct {
	pattern string
	re      *regexp.Regexp
	handler H
}

// Router is an ordered route table holding handlers of type H.
// Registration happens at startup; after that the table is read-only and
// safe for unsynchronized concurrent lookups.
type Router[H any] struct {
	routes []route[H]
}

// New returns an empty route table.
func New[H any]() *Router[H] {
	return &Router[H]{}
}

// Register appends a pattern and its handler to the table. Panics on a
// pattern that does not compile, which can only happen at configuration
// time.
func (r *Router[H]) Register(pattern string, handler H) {
	r.routes = append(r.routes, route[H]{
		pattern: pattern,
		re:      regexp.MustCompile(ConvertToRegex(pattern)),
		handler: handler,
	})
}

// Patterns returns the registered patterns in registration order.
func (r *Router[H]) Patterns() []string {
	out := make([]string, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.pattern
	}
	return out
}

// Match returns the first registered pattern accepting path, along with
// its handler.
func (r *Router[H]) Match(path string) (string, H, bool) {
	for _, rt := range r.routes {
		if rt.re.MatchString(path) {
			return rt.pattern, rt.handler, true
		}
	}
	var zero H
	return "", zero, false
}
