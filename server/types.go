// Package server hosts the protocol core on real TCP connections: one
// accept loop, one goroutine per connection, no shared state between
// connections beyond the immutable route tables.

package server

import (
	"context"
	"net"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/netforge/wireframe/highlevel"
	"github.com/netforge/wireframe/router"
)

// Config carries startup-time settings.
type Config struct {
	ListenAddr     string
	ReadBufferSize int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":8080",
		ReadBufferSize: highlevel.DefaultReadBufferSize,
	}
}

// Server accepts connections and drives one highlevel.Context per
// connection. Route tables are populated before ListenAndServe and are
// immutable afterwards.
type Server struct {
	cfg *Config
	log zerolog.Logger

	routes   *router.Router[highlevel.Handler]
	wsRoutes *router.Router[highlevel.WSHandler]

	ln     net.Listener
	conns  *xsync.MapOf[net.Conn, struct{}]
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}
