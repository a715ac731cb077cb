// Package server implements the TCP listener and the per-connection
// request/response loop of the HTTP server.
//
// # Connection lifecycle
//
// The listener accepts connections and hands each one to its own goroutine.
// That goroutine runs a small state machine for the whole life of the
// connection:
//
//	awaiting request -> dispatching -> responding -> (loop | closed)
//
// Awaiting a request means protocol.ReadRequest with the configured idle
// timeout. Silent framing failures (idle timeout, peer disconnect) close the
// connection without a response; the remaining framing failures are answered
// with a best-effort 400 before closing. A parsed request is either answered
// directly (OPTIONS gets a 204 with CORS headers) or dispatched through the
// router. Write failures are fatal to the connection only.
//
// After each successfully written response the loop decides keep-alive:
// HTTP/1.0 clients must opt in with "Connection: keep-alive", any client can
// opt out with "Connection: close", and a per-connection request quota caps
// reuse. Within one connection requests are strictly sequential; there is no
// pipelining.
//
// # Shutdown
//
// Start installs SIGINT/SIGTERM handlers. Shutdown closes the listener,
// closes every active connection, and waits (bounded) for the connection
// goroutines to drain, in the same shape as the rest of the process
// lifecycle management.
package server
