package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/netforge/wireframe/api"
)

// maskPayload XORs a copy of payload with the 4-byte key, producing the
// on-wire form of a client frame.
func maskPayload(payload []byte, key [4]byte) []byte {
	out := make([]byte, len(payload))
	for i, b := range payload {
		out[i] = b ^ key[i%4]
	}
	return out
}

func TestDecodeMessage_UnmaskedText(t *testing.T) {
	// FIN=1, opcode=text, MASK=0, length=5
	frame := []byte{0x81, 0x05, 'H', 'e', 'l', 'l', 'o'}

	text, err := DecodeMessage(frame, len(frame))
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	if text != "Hello" {
		t.Errorf("payload mismatch: got %q, want %q", text, "Hello")
	}
}

func TestDecodeMessage_MaskedText(t *testing.T) {
	key := [4]byte{0x01, 0x02, 0x03, 0x04}
	frame := []byte{0x81, 0x85, key[0], key[1], key[2], key[3]}
	frame = append(frame, maskPayload([]byte("Hello"), key)...)

	text, err := DecodeMessage(frame, len(frame))
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	if text != "Hello" {
		t.Errorf("unmasked payload mismatch: got %q, want %q", text, "Hello")
	}
}

func TestDecodeMessage_ExtendedLength16(t *testing.T) {
	payload := strings.Repeat("A", 126)
	frame := []byte{0x81, 126}
	var ext [2]byte
	binary.BigEndian.PutUint16(ext[:], 126)
	frame = append(frame, ext[:]...)
	frame = append(frame, payload...)

	text, err := DecodeMessage(frame, len(frame))
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	if text != payload {
		t.Errorf("extended payload mismatch: got %d bytes, want %d", len(text), len(payload))
	}
}

func TestDecodeMessage_ExtendedLength64(t *testing.T) {
	payload := strings.Repeat("B", 70000)
	frame := []byte{0x81, 127}
	var ext [8]byte
	binary.BigEndian.PutUint64(ext[:], uint64(len(payload)))
	frame = append(frame, ext[:]...)
	frame = append(frame, payload...)

	text, err := DecodeMessage(frame, len(frame))
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	if text != payload {
		t.Errorf("64-bit length payload mismatch: got %d bytes, want %d", len(text), len(payload))
	}
}

func TestDecodeFrame_TooShort(t *testing.T) {
	cases := []struct {
		name  string
		frame []byte
	}{
		{"declared length exceeds buffer", []byte{0x81, 0x05, 'H', 'i'}},
		{"truncated header", []byte{0x81}},
		{"missing extended length", []byte{0x81, 126, 0x00}},
		{"missing mask key", []byte{0x81, 0x85, 0x01, 0x02}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeFrame(tc.frame, len(tc.frame)); !errors.Is(err, api.ErrFrameTooShort) {
				t.Errorf("got err = %v, want ErrFrameTooShort", err)
			}
		})
	}
}

func TestDecodeFrame_NilBuffer(t *testing.T) {
	if _, err := DecodeFrame(nil, 0); !errors.Is(err, api.ErrNullInput) {
		t.Errorf("got err = %v, want ErrNullInput", err)
	}
}

func TestDecodeFrame_OpcodeNotValidated(t *testing.T) {
	// Opcode 0xC is reserved, but the codec only extracts payloads.
	frame := []byte{0x8C, 0x02, 'o', 'k'}
	f, err := DecodeFrame(frame, len(frame))
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if f.Opcode != 0xC {
		t.Errorf("opcode: got 0x%X, want 0xC", f.Opcode)
	}
	if string(f.Payload) != "ok" {
		t.Errorf("payload: got %q, want %q", f.Payload, "ok")
	}
}

func TestDecodeFrame_FinBit(t *testing.T) {
	frame := []byte{0x01, 0x01, 'x'} // FIN=0, continuation-style
	f, err := DecodeFrame(frame, len(frame))
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if f.Fin {
		t.Error("expected FIN=0")
	}
}

func TestEncodeMessage_ShortFrame(t *testing.T) {
	wire := EncodeMessage("Hello")
	want := []byte{0x81, 0x05, 'H', 'e', 'l', 'l', 'o'}
	if !bytes.Equal(wire, want) {
		t.Errorf("wire mismatch:\n got %v\nwant %v", wire, want)
	}
}

func TestEncodeMessage_NeverMasked(t *testing.T) {
	for _, size := range []int{0, 1, 125, 126, 0xFFFF, 0x10000} {
		wire := EncodeMessage(strings.Repeat("x", size))
		if wire[1]&MaskBit != 0 {
			t.Errorf("size %d: mask bit set on server frame", size)
		}
	}
}

func TestEncodeMessage_LengthTiers(t *testing.T) {
	cases := []struct {
		size       int
		selector   byte
		headerSize int
	}{
		{5, 5, 2},
		{125, 125, 2},
		{126, 126, 4},
		{0xFFFF, 126, 4},
		{0x10000, 127, 10},
	}
	for _, tc := range cases {
		wire := EncodeMessage(strings.Repeat("x", tc.size))
		if wire[1] != tc.selector {
			t.Errorf("size %d: length selector = %d, want %d", tc.size, wire[1], tc.selector)
		}
		if len(wire) != tc.headerSize+tc.size {
			t.Errorf("size %d: wire length = %d, want %d", tc.size, len(wire), tc.headerSize+tc.size)
		}
	}
}

func TestEncodeDecode_Roundtrip(t *testing.T) {
	for _, text := range []string{"", "a", "Hello", strings.Repeat("z", 200), strings.Repeat("q", 70000)} {
		wire := EncodeMessage(text)
		got, err := DecodeMessage(wire, len(wire))
		if err != nil {
			t.Fatalf("roundtrip decode failed for %d bytes: %v", len(text), err)
		}
		if got != text {
			t.Errorf("roundtrip mismatch for %d bytes", len(text))
		}
	}
}
