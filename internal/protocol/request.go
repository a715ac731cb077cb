package protocol

import (
	"net/textproto"
	"strconv"
	"strings"
)

// Request is one parsed HTTP request as read off the wire.
type Request struct {
	// Method is the request method, normalized to upper case
	Method string
	// Target is the raw request target (path plus query string, undecoded)
	Target string
	// Proto is the protocol version token ("HTTP/1.0" or "HTTP/1.1")
	Proto string
	// Headers maps canonicalized field names to values.
	// When a field repeats, the last occurrence wins.
	Headers map[string]string
	// Body holds exactly Content-Length bytes (empty when the header is
	// absent or non-numeric)
	Body []byte
}

// Header returns the value for a header field, looked up case-insensitively.
// Returns "" when the field is absent.
func (r *Request) Header(name string) string {
	return r.Headers[textproto.CanonicalMIMEHeaderKey(name)]
}

// ContentLength returns the declared body length. Absent or non-numeric
// Content-Length values count as 0, matching the framing rules.
func (r *Request) ContentLength() int {
	v, ok := r.Headers["Content-Length"]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// WantsClose reports whether the request carries "Connection: close".
func (r *Request) WantsClose() bool {
	return strings.EqualFold(strings.TrimSpace(r.Header("Connection")), "close")
}

// WantsKeepAlive reports whether the request carries "Connection: keep-alive".
func (r *Request) WantsKeepAlive() bool {
	return strings.EqualFold(strings.TrimSpace(r.Header("Connection")), "keep-alive")
}
