// Package httpcore
//
// Response content variants. Each variant answers the same three
// questions: how long is it (if known before writing), what is its
// fingerprint, how does it stream itself to a writer.

package httpcore

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/sugawarayuuta/sonnet"
	"golang.org/x/crypto/blake2b"
)

// Content is the capability contract for a response body.
//
// Length reports the declared byte count; the bool is false when the
// size cannot be known before the write completes. Checksum returns a
// weak fingerprint for caching and validation, not for security.
// WriteTo streams the payload, taking bufSize as a buffering hint, and
// leaves w flushed on success.
type Content interface {
	Length() (int64, bool)
	Checksum() (string, error)
	WriteTo(w io.Writer, bufSize int) (int64, error)
}

// RawContent is a fixed byte buffer. Its length is always known.
type RawContent struct {
	data []byte
}

// NewRawContent wraps buf as response content. The buffer is not copied.
func NewRawContent(buf []byte) *RawContent {
	return &RawContent{data: buf}
}

func (c *RawContent) Length() (int64, bool) {
	return int64(len(c.data)), true
}

func (c *RawContent) Checksum() (string, error) {
	sum := blake2b.Sum256(c.data)
	return hex.EncodeToString(sum[:]), nil
}

func (c *RawContent) WriteTo(w io.Writer, bufSize int) (int64, error) {
	bw := newFlushWriter(w, bufSize)
	n, err := bw.Write(c.data)
	if err != nil {
		return int64(n), err
	}
	return int64(n), bw.Flush()
}

// LazyJSONContent serializes its source object directly into the output
// stream at write time, so the total size is unknown until the write
// completes. A caller that must emit Content-Length before streaming
// cannot use this variant without buffering first.
type LazyJSONContent struct {
	src any
}

// NewLazyJSONContent defers serialization of src until WriteTo.
func NewLazyJSONContent(src any) *LazyJSONContent {
	return &LazyJSONContent{src: src}
}

func (c *LazyJSONContent) Length() (int64, bool) {
	return 0, false
}

// Checksum is a weak identity hash over the source's type and printed
// value, usable only to tell objects apart for cache validation.
func (c *LazyJSONContent) Checksum() (string, error) {
	sum := blake2b.Sum256([]byte(fmt.Sprintf("%T:%v", c.src, c.src)))
	return hex.EncodeToString(sum[:]), nil
}

func (c *LazyJSONContent) WriteTo(w io.Writer, bufSize int) (int64, error) {
	data, err := sonnet.Marshal(c.src)
	if err != nil {
		return 0, err
	}
	bw := newFlushWriter(w, bufSize)
	n, err := bw.Write(data)
	if err != nil {
		return int64(n), err
	}
	return int64(n), bw.Flush()
}

// EagerJSONContent serializes its source once, at construction. The
// stored string is the single source of truth for both Length and the
// written bytes; WriteTo never re-serializes.
type EagerJSONContent struct {
	serialized string
}

// NewEagerJSONContent serializes src immediately so the content length
// is known before any headers go out.
func NewEagerJSONContent(src any) (*EagerJSONContent, error) {
	data, err := sonnet.Marshal(src)
	if err != nil {
		return nil, err
	}
	return &EagerJSONContent{serialized: string(data)}, nil
}

func (c *EagerJSONContent) Length() (int64, bool) {
	return int64(len(c.serialized)), true
}

func (c *EagerJSONContent) Checksum() (string, error) {
	sum := blake2b.Sum256([]byte(c.serialized))
	return hex.EncodeToString(sum[:]), nil
}

func (c *EagerJSONContent) WriteTo(w io.Writer, bufSize int) (int64, error) {
	bw := newFlushWriter(w, bufSize)
	n, err := bw.Write([]byte(c.serialized))
	if err != nil {
		return int64(n), err
	}
	return int64(n), bw.Flush()
}

// newFlushWriter wraps w in a buffered writer honoring the bufSize hint.
func newFlushWriter(w io.Writer, bufSize int) *bufio.Writer {
	if bufSize > 0 {
		return bufio.NewWriterSize(w, bufSize)
	}
	return bufio.NewWriter(w)
}
