// Package protocol implements HTTP/1.1 wire framing over raw connections.
//
// The package owns the two byte-level halves of the server: turning the
// stream of bytes on a persistent TCP connection into discrete Request
// values (ReadRequest), and serializing Response values back into wire bytes
// (Response.Build).
//
// # Request framing
//
// A request is framed by the CRLFCRLF header terminator and a
// Content-Length-delimited body. There is no support for chunked
// transfer-encoding; a request without a (numeric) Content-Length has no
// body. Resource usage is bounded while reading: the header block may not
// exceed Limits.MaxHeaderSize, the declared body length may not exceed
// Limits.MaxBodySize (checked before the body is read), and every socket
// read is armed with Limits.IdleTimeout.
//
// Framing failures are classified into a small closed taxonomy (see
// errors.go) so the connection supervisor can decide between answering with
// a 400 and closing silently.
//
// # Response framing
//
// Responses carry an insertion-ordered header list. Build injects the
// protocol-mandated defaults (Date, Server, Content-Length, Content-Type and
// permissive CORS headers) for any field the handler did not set explicitly.
package protocol
