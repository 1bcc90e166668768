// Package api
//
// Transport abstraction consumed by the protocol core. The core never
// opens sockets itself; it is handed something that can move bytes.

package api

// Transport abstracts a full-duplex byte-stream connection. It may be
// backed by a net.Conn, an in-memory pipe, or a test fake.
//
// Read fills a caller-supplied buffer and returns the byte count; a zero
// count with a nil error means the peer closed the connection and the
// caller must stop reading.
type Transport interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}
