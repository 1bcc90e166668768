// Package server
//
// Accept loop and per-connection dispatch.

package server

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/netforge/wireframe/highlevel"
	"github.com/netforge/wireframe/httpcore"
	"github.com/netforge/wireframe/protocol"
	"github.com/netforge/wireframe/router"
)

var ErrAlreadyRunning = errors.New("server already running")

// NewServer builds a Server. Register routes before calling
// ListenAndServe; the tables are read without synchronization afterwards.
func NewServer(cfg *Config, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		log:      zerolog.Nop(),
		routes:   router.New[highlevel.Handler](),
		wsRoutes: router.New[highlevel.WSHandler](),
		conns:    xsync.NewMapOf[net.Conn, struct{}](),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handle registers an HTTP handler for a route pattern. Patterns are
// matched first-registered-first.
func (s *Server) Handle(pattern string, h highlevel.Handler) {
	s.routes.Register(pattern, h)
}

// HandleWS registers a WebSocket message handler for a route pattern.
func (s *Server) HandleWS(pattern string, h highlevel.WSHandler) {
	s.wsRoutes.Register(pattern, h)
}

// ListenAndServe accepts connections until Shutdown is called or the
// listener fails.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	lc := net.ListenConfig{Control: listenControl}
	ln, err := lc.Listen(s.ctx, "tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.log.Info().Str("addr", s.cfg.ListenAddr).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				s.wg.Wait()
				return nil
			default:
				return err
			}
		}

		s.conns.Store(conn, struct{}{})
		s.wg.Add(1)
		go func(conn net.Conn) {
			defer s.wg.Done()
			defer s.conns.Delete(conn)
			s.serveConn(conn)
		}(conn)
	}
}

// Shutdown stops accepting, closes live connections and waits for the
// connection goroutines to drain.
func (s *Server) Shutdown() error {
	s.cancel()
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln != nil {
		ln.Close()
	}
	s.conns.Range(func(conn net.Conn, _ struct{}) bool {
		conn.Close()
		return true
	})
	s.wg.Wait()
	return nil
}

// serveConn reads requests off one connection in arrival order. Plain
// requests are answered and the loop continues; an upgrade request hands
// the connection over to the WebSocket frame loop.
func (s *Server) serveConn(conn net.Conn) {
	log := s.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	tr := &netTransport{conn: conn}
	ctx := highlevel.NewContext(tr, s.routes,
		highlevel.WithLogger(log),
		highlevel.WithReadBufferSize(s.cfg.ReadBufferSize),
	)
	defer ctx.Close()

	buf := make([]byte, s.cfg.ReadBufferSize)
	for {
		n, err := tr.Read(buf)
		if err != nil {
			log.Debug().Err(err).Msg("read failed")
			return
		}
		if n == 0 {
			return
		}
		raw := buf[:n]

		headers, _, err := httpcore.SplitHeadersAndBody(raw)
		if err == nil && protocol.IsUpgradeRequest(headers) {
			s.serveWebSocket(ctx, log, headers)
			return
		}

		wire, err := ctx.HandleRequest(raw)
		if err != nil {
			log.Warn().Err(err).Msg("request rejected")
			return
		}
		if _, err := tr.Write(wire); err != nil {
			log.Debug().Err(err).Msg("write failed")
			return
		}
	}
}

// serveWebSocket completes the handshake and runs the frame loop until
// the peer closes or the handler declines to continue.
func (s *Server) serveWebSocket(ctx *highlevel.Context, log zerolog.Logger, headers []string) {
	_, path, ok := httpcore.ExtractRequestURI(headers)
	if !ok {
		return
	}
	_, handler, ok := s.wsRoutes.Match(path)
	if !ok {
		log.Debug().Str("path", path).Msg("no websocket route")
		return
	}
	if err := ctx.Upgrade(headers); err != nil {
		log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	for {
		n, text, err := ctx.ReadFrame()
		if err != nil {
			log.Debug().Err(err).Msg("frame read failed")
			return
		}
		if n == 0 {
			return
		}
		reply, ok := handler(text)
		if !ok {
			return
		}
		if err := ctx.SendFrame(reply); err != nil {
			log.Debug().Err(err).Msg("frame send failed")
			return
		}
	}
}

// netTransport adapts a net.Conn to api.Transport. EOF maps to a zero
// read so the layers above see the standard close signal.
type netTransport struct {
	conn net.Conn
}

func (t *netTransport) Read(p []byte) (int, error) {
	n, err := t.conn.Read(p)
	if err == io.EOF {
		return 0, nil
	}
	return n, err
}

func (t *netTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

func (t *netTransport) Close() error {
	return t.conn.Close()
}
