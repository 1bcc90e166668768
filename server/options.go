// Package server
//
// Functional options for Server construction.

package server

import "github.com/rs/zerolog"

// ServerOption customizes server initialization.
type ServerOption func(*Server)

// WithLogger attaches a structured logger; the default discards output.
func WithLogger(log zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// WithReadBufferSize overrides the per-connection read buffer size.
func WithReadBufferSize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.cfg.ReadBufferSize = n
		}
	}
}
