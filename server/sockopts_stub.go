//go:build !linux

// Package server
//
// Listener socket option stub for non-Linux platforms.

package server

import "syscall"

// listenControl is a no-op where platform socket options are not wired.
func listenControl(network, address string, c syscall.RawConn) error {
	return nil
}
