// Package highlevel
//
// Per-connection request/frame orchestration.

package highlevel

import (
	"sync"

	"github.com/eapache/queue"
	"github.com/rs/zerolog"

	"github.com/netforge/wireframe/api"
	"github.com/netforge/wireframe/httpcore"
	"github.com/netforge/wireframe/protocol"
	"github.com/netforge/wireframe/router"
)

// DefaultReadBufferSize bounds a single inbound read. Large enough for a
// full handshake request or a 64 KiB frame plus header.
const DefaultReadBufferSize = 64*1024 + protocol.MaxFrameHeaderLen

// Context orchestrates one connection. HTTP dispatch composes the
// request parser, URI extractor and route table; WebSocket traffic goes
// through ReadFrame and SendFrame after an upgrade. A Context is owned
// by a single connection goroutine; only SendFrame may be called from
// other goroutines.
type Context struct {
	transport api.Transport
	routes    *router.Router[Handler]
	log       zerolog.Logger
	readBuf   []byte

	// Outbound frames are staged through a FIFO and flushed under the
	// lock, so concurrent senders cannot interleave frame bytes.
	sendMu sync.Mutex
	sendQ  *queue.Queue
}

// Option customizes Context construction.
type Option func(*Context)

// WithLogger attaches a structured logger to the context.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Context) { c.log = log }
}

// WithReadBufferSize overrides the inbound read buffer size.
func WithReadBufferSize(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.readBuf = make([]byte, n)
		}
	}
}

// NewContext builds a Context over a transport and an already-populated
// route table. The table must not be mutated afterwards.
func NewContext(tr api.Transport, routes *router.Router[Handler], opts ...Option) *Context {
	c := &Context{
		transport: tr,
		routes:    routes,
		log:       zerolog.Nop(),
		readBuf:   make([]byte, DefaultReadBufferSize),
		sendQ:     queue.New(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// HandleRequest runs one raw request through parse, extract, match and
// dispatch, returning the exact bytes to write back.
//
// A request without a recognizable request line yields a 400 response; a
// route miss yields a 404. Neither is an error. Parse failures are
// returned to the caller, which decides whether to close the connection
// or answer with an error response.
func (c *Context) HandleRequest(raw []byte) ([]byte, error) {
	headers, body, err := httpcore.SplitHeadersAndBody(raw)
	if err != nil {
		return nil, err
	}

	method, path, ok := httpcore.ExtractRequestURI(headers)
	if !ok {
		c.log.Debug().Msg("no request line found")
		return httpcore.SerializeResponse(statusResponse(400, "Bad Request")), nil
	}

	pattern, handler, ok := c.routes.Match(path)
	if !ok {
		c.log.Debug().Str("path", path).Msg("no route matched")
		return httpcore.SerializeResponse(statusResponse(404, "Not Found")), nil
	}

	resp := handler(&Request{
		Pattern: pattern,
		Method:  method,
		Path:    path,
		Headers: headers,
		Body:    body,
	})
	return httpcore.SerializeResponse(resp), nil
}

// Upgrade validates the WebSocket upgrade headers and writes the 101
// handshake response. After a successful upgrade the connection speaks
// frames, not requests.
func (c *Context) Upgrade(headerLines []string) error {
	key, err := protocol.ValidateUpgradeHeaders(headerLines)
	if err != nil {
		return err
	}
	wire := httpcore.SerializeResponse(protocol.BuildUpgradeResponse(key))
	if _, err := c.transport.Write(wire); err != nil {
		return err
	}
	c.log.Debug().Msg("connection upgraded to websocket")
	return nil
}

// ReadFrame reads one inbound frame from the transport and decodes its
// payload as text. n == 0 means the peer closed the connection; the
// caller must stop reading.
func (c *Context) ReadFrame() (int, string, error) {
	n, err := c.transport.Read(c.readBuf)
	if err != nil {
		return 0, "", err
	}
	if n == 0 {
		return 0, "", nil
	}
	text, err := protocol.DecodeMessage(c.readBuf, n)
	if err != nil {
		return 0, "", err
	}
	return n, text, nil
}

// SendFrame encodes text as a single final unmasked text frame and
// writes it out. Frames are staged through the FIFO and drained in
// order, preserving per-connection ordering under concurrent senders.
func (c *Context) SendFrame(text string) error {
	wire := protocol.EncodeMessage(text)

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.sendQ.Add(wire)
	for c.sendQ.Length() > 0 {
		next := c.sendQ.Peek().([]byte)
		if _, err := c.transport.Write(next); err != nil {
			return err
		}
		c.sendQ.Remove()
	}
	return nil
}

// Close shuts down the underlying transport.
func (c *Context) Close() error {
	return c.transport.Close()
}

// statusResponse builds a minimal response whose body repeats the reason
// phrase.
func statusResponse(code int, reason string) *httpcore.Response {
	resp := httpcore.NewResponse(code, reason)
	resp.AddHeader("Content-Type", "text/plain")
	resp.SetContent(httpcore.NewRawContent([]byte(reason)))
	return resp
}
