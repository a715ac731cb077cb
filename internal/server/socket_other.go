//go:build !unix

package server

import "syscall"

// reuseAddrControl is a no-op where SO_REUSEADDR semantics differ (Windows
// binds succeed on TIME_WAIT sockets by default).
func reuseAddrControl(network, address string, c syscall.RawConn) error {
	return nil
}
