package protocol

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// Framing errors. All of them are fatal to the connection: the first three
// warrant a best-effort 400 response before closing, the last two mean the
// peer is gone (or silent) and the connection is closed without a response.
var (
	ErrHeadersTooLarge      = errors.New("request headers too large")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrIdleTimeout          = errors.New("timeout waiting for request data")
	ErrPeerClosed           = errors.New("peer closed connection")
)

// IsSilentClose reports whether err is a framing error that should close the
// connection without sending a response.
func IsSilentClose(err error) bool {
	return errors.Is(err, ErrIdleTimeout) || errors.Is(err, ErrPeerClosed)
}

// classifyReadError maps a socket read error onto the framing taxonomy.
func classifyReadError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrIdleTimeout
	}
	if errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return ErrPeerClosed
	}
	return fmt.Errorf("connection read failed: %w", err)
}
