package protocol

import (
	"bytes"
	"fmt"
	"net"
	"net/textproto"
	"strings"
	"time"
)

// headerTerminator marks the end of the header block on the wire.
var headerTerminator = []byte("\r\n\r\n")

// Limits bounds resource usage while reading one request.
type Limits struct {
	// MaxBodySize is the largest accepted Content-Length, bytes
	MaxBodySize int
	// MaxHeaderSize caps the buffered bytes while hunting for the header
	// terminator
	MaxHeaderSize int
	// ReadChunk is the socket read size per attempt
	ReadChunk int
	// IdleTimeout applies to each individual read, reset before every
	// attempt
	IdleTimeout time.Duration
}

// ReadRequest reads exactly one HTTP request off conn.
//
// Bytes are accumulated until the CRLFCRLF header terminator appears, then
// the request line and headers are parsed and the Content-Length-declared
// body is read. Every read waits at most lim.IdleTimeout; the deadline is
// re-armed before each attempt, so a slow client only has to keep bytes
// flowing.
//
// Errors are always one of the framing taxonomy (ErrHeadersTooLarge,
// ErrBodyTooLarge, ErrMalformedRequestLine, ErrIdleTimeout, ErrPeerClosed)
// or a wrapped read error.
func ReadRequest(conn net.Conn, lim Limits) (*Request, error) {
	data := make([]byte, 0, lim.ReadChunk)
	chunk := make([]byte, lim.ReadChunk)

	// Accumulate until the end of the header block
	var headerEnd int
	for {
		if i := bytes.Index(data, headerTerminator); i >= 0 {
			headerEnd = i
			break
		}
		if len(data) > lim.MaxHeaderSize {
			return nil, ErrHeadersTooLarge
		}

		if err := conn.SetReadDeadline(time.Now().Add(lim.IdleTimeout)); err != nil {
			return nil, fmt.Errorf("failed to arm read deadline: %w", err)
		}
		n, err := conn.Read(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)
		}
		if err != nil {
			// A read may deliver the final bytes together with EOF
			if bytes.Contains(data, headerTerminator) {
				continue
			}
			return nil, classifyReadError(err)
		}
	}

	req, err := parseHeaderBlock(data[:headerEnd])
	if err != nil {
		return nil, err
	}

	contentLength := req.ContentLength()
	if contentLength > lim.MaxBodySize {
		return nil, ErrBodyTooLarge
	}

	// Bytes already buffered past the terminator belong to the body
	rest := data[headerEnd+len(headerTerminator):]
	body := make([]byte, 0, contentLength)
	if take := min(len(rest), contentLength); take > 0 {
		body = append(body, rest[:take]...)
	}

	// Read the remaining declared bytes, never past the declared length
	for len(body) < contentLength {
		if err := conn.SetReadDeadline(time.Now().Add(lim.IdleTimeout)); err != nil {
			return nil, fmt.Errorf("failed to arm read deadline: %w", err)
		}
		want := min(lim.ReadChunk, contentLength-len(body))
		n, err := conn.Read(chunk[:want])
		if n > 0 {
			body = append(body, chunk[:n]...)
		}
		if err != nil && len(body) < contentLength {
			return nil, classifyReadError(err)
		}
	}
	req.Body = body

	return req, nil
}

// parseHeaderBlock parses the request line and header fields from the bytes
// preceding the header terminator.
func parseHeaderBlock(block []byte) (*Request, error) {
	lines := strings.Split(string(block), "\r\n")

	// Request line: method and target are mandatory, the version token
	// defaults to HTTP/1.1 when missing
	tokens := strings.Fields(lines[0])
	if len(tokens) < 2 {
		return nil, ErrMalformedRequestLine
	}
	req := &Request{
		Method:  strings.ToUpper(tokens[0]),
		Target:  tokens[1],
		Proto:   "HTTP/1.1",
		Headers: make(map[string]string),
	}
	if len(tokens) >= 3 {
		req.Proto = tokens[2]
	}

	// Header fields: lines without a colon are ignored, field names are
	// canonicalized, the last occurrence of a repeated field wins
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key := textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(name))
		req.Headers[key] = strings.TrimSpace(value)
	}

	return req, nil
}
