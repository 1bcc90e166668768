// Package protocol
//
// WebSocket frame encoding and decoding over caller-owned buffers.
//
// The codec is a set of pure functions: input buffer plus length in,
// structured frame or error out. It holds no cursors and no state, so
// every call is independently testable and safe for concurrent use.

package protocol

import (
	"encoding/binary"

	"github.com/netforge/wireframe/api"
)

// Frame is a decoded WebSocket frame.
type Frame struct {
	Fin        bool    // FIN bit
	Opcode     byte    // low nibble of byte 0; not validated here
	Masked     bool    // whether the payload arrived masked
	PayloadLen int64   // declared payload length
	MaskKey    [4]byte // meaningful only when Masked
	Payload    []byte  // unmasked payload bytes
}

// DecodeFrame parses one frame out of buf[:n].
//
// The opcode is carried through without validation: this layer extracts
// payloads, and control-frame policy belongs to the caller. Returns
// api.ErrFrameTooShort when n is smaller than the header plus the mask
// key plus the declared payload length.
func DecodeFrame(buf []byte, n int) (*Frame, error) {
	if buf == nil {
		return nil, api.ErrNullInput
	}
	if n > len(buf) {
		n = len(buf)
	}
	if n < 2 {
		return nil, api.ErrFrameTooShort
	}

	fin := buf[0]&FinBit != 0
	opcode := buf[0] & 0x0F
	masked := buf[1]&MaskBit != 0
	length := int64(buf[1] & 0x7F)
	offset := 2

	switch length {
	case len16Selector:
		if n < offset+2 {
			return nil, api.ErrFrameTooShort
		}
		length = int64(binary.BigEndian.Uint16(buf[offset:]))
		offset += 2
	case len64Selector:
		if n < offset+8 {
			return nil, api.ErrFrameTooShort
		}
		length = int64(binary.BigEndian.Uint64(buf[offset:]))
		offset += 8
	}

	var maskKey [4]byte
	if masked {
		if n < offset+4 {
			return nil, api.ErrFrameTooShort
		}
		copy(maskKey[:], buf[offset:offset+4])
		offset += 4
	}

	// Compare against the remaining bytes rather than offset+length,
	// which a hostile 64-bit declared length could overflow.
	if length < 0 || length > int64(n-offset) {
		return nil, api.ErrFrameTooShort
	}

	payload := make([]byte, length)
	copy(payload, buf[offset:int64(offset)+length])
	if masked {
		unmaskInPlace(payload, maskKey)
	}

	return &Frame{
		Fin:        fin,
		Opcode:     opcode,
		Masked:     masked,
		PayloadLen: length,
		MaskKey:    maskKey,
		Payload:    payload,
	}, nil
}

// DecodeMessage decodes buf[:n] and returns the payload as UTF-8 text.
func DecodeMessage(buf []byte, n int) (string, error) {
	frame, err := DecodeFrame(buf, n)
	if err != nil {
		return "", err
	}
	return string(frame.Payload), nil
}

// EncodeMessage serializes text as a single final text frame. Frames on
// the server-to-client path are never masked.
func EncodeMessage(text string) []byte {
	return EncodeFrame(OpcodeText, []byte(text))
}

// EncodeFrame serializes a final unmasked frame with the given opcode,
// using the three-tier length encoding (7-bit, 16-bit, 64-bit).
func EncodeFrame(opcode byte, payload []byte) []byte {
	plen := len(payload)
	buf := make([]byte, 0, MaxFrameHeaderLen+plen)
	buf = append(buf, FinBit|opcode&0x0F)

	switch {
	case plen <= 125:
		buf = append(buf, byte(plen))
	case plen <= 0xFFFF:
		buf = append(buf, len16Selector)
		var ext [2]byte
		binary.BigEndian.PutUint16(ext[:], uint16(plen))
		buf = append(buf, ext[:]...)
	default:
		buf = append(buf, len64Selector)
		var ext [8]byte
		binary.BigEndian.PutUint64(ext[:], uint64(plen))
		buf = append(buf, ext[:]...)
	}

	return append(buf, payload...)
}

// unmaskInPlace applies the RFC6455 XOR transform with the 4-byte key.
func unmaskInPlace(buf []byte, key [4]byte) {
	for i := range buf {
		buf[i] ^= key[i%4]
	}
}
