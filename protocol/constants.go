// Package protocol
//
// WebSocket wire protocol constants.

package protocol

const (
	// Opcodes per RFC6455 section 5.2.
	OpcodeContinuation = 0x0
	OpcodeText         = 0x1
	OpcodeBinary       = 0x2
	OpcodeClose        = 0x8
	OpcodePing         = 0x9
	OpcodePong         = 0xA

	// Bit masks for the first two header bytes.
	FinBit  = 0x80
	MaskBit = 0x80

	// Length selector values in the low 7 bits of byte 1.
	len16Selector = 126
	len64Selector = 127

	// MaxFrameHeaderLen is the largest possible header: 2 base bytes,
	// 8 extended-length bytes, 4 mask-key bytes.
	MaxFrameHeaderLen = 14
)
