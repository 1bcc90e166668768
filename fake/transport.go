// Package fake provides controllable in-memory implementations of the
// wireframe interfaces for tests. Behavior is fully scripted: reads are
// served from queued chunks and writes are captured for inspection.

package fake

import (
	"sync"

	"github.com/netforge/wireframe/api"
)

// Transport is a scripted api.Transport. One queued chunk is served per
// Read call; an exhausted queue reads as zero bytes, which the protocol
// layer treats as the peer closing.
type Transport struct {
	mu         sync.Mutex
	readChunks [][]byte
	written    [][]byte
	closed     bool
	readError  error
	writeError error
}

// NewTransport creates an empty fake transport.
func NewTransport() *Transport {
	return &Transport{}
}

// Read implements api.Transport.
func (t *Transport) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, api.ErrTransportClosed
	}
	if t.readError != nil {
		return 0, t.readError
	}
	if len(t.readChunks) == 0 {
		return 0, nil
	}
	chunk := t.readChunks[0]
	t.readChunks = t.readChunks[1:]
	return copy(p, chunk), nil
}

// Write implements api.Transport.
func (t *Transport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, api.ErrTransportClosed
	}
	if t.writeError != nil {
		return 0, t.writeError
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	t.written = append(t.written, buf)
	return len(p), nil
}

// Close implements api.Transport.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// AddReadData queues a chunk to be returned by a future Read call.
func (t *Transport) AddReadData(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	t.readChunks = append(t.readChunks, buf)
}

// Written returns everything written so far, one entry per Write call.
func (t *Transport) Written() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.written))
	copy(out, t.written)
	return out
}

// Closed reports whether Close has been called.
func (t *Transport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// SetReadError makes subsequent Read calls fail with err.
func (t *Transport) SetReadError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.readError = err
}

// SetWriteError makes subsequent Write calls fail with err.
func (t *Transport) SetWriteError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeError = err
}
