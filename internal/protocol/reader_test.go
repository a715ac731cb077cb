package protocol

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

// testLimits keeps the reader bounds small enough to exercise in-process.
func testLimits() Limits {
	return Limits{
		MaxBodySize:   1024,
		MaxHeaderSize: 2048,
		ReadChunk:     16, // tiny chunk forces multi-read accumulation
		IdleTimeout:   2 * time.Second,
	}
}

// serve returns a conn whose peer delivers the given writes in order and
// then optionally closes. Both pipe ends are cleaned up with the test.
func serve(t *testing.T, writes [][]byte, closeAfter bool) net.Conn {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	go func() {
		for _, w := range writes {
			if _, err := client.Write(w); err != nil {
				return
			}
		}
		if closeAfter {
			_ = client.Close()
		}
	}()
	return server
}

func TestReadRequest(t *testing.T) {
	tests := []struct {
		name    string
		writes  [][]byte
		close   bool
		limits  *Limits // nil = testLimits()
		wantErr error
		verify  func(t *testing.T, req *Request)
	}{
		{
			name:   "simple GET in one write",
			writes: [][]byte{[]byte("GET /echo?message=hi HTTP/1.1\r\nHost: example\r\n\r\n")},
			verify: func(t *testing.T, req *Request) {
				if req.Method != "GET" {
					t.Errorf("method = %q, want GET", req.Method)
				}
				if req.Target != "/echo?message=hi" {
					t.Errorf("target = %q", req.Target)
				}
				if req.Proto != "HTTP/1.1" {
					t.Errorf("proto = %q", req.Proto)
				}
				if req.Header("host") != "example" {
					t.Errorf("Host header = %q, want example", req.Header("host"))
				}
				if len(req.Body) != 0 {
					t.Errorf("body length = %d, want 0", len(req.Body))
				}
			},
		},
		{
			name: "headers arriving byte by byte",
			writes: func() [][]byte {
				raw := "GET / HTTP/1.1\r\nHost: a\r\n\r\n"
				var writes [][]byte
				for i := 0; i < len(raw); i++ {
					writes = append(writes, []byte{raw[i]})
				}
				return writes
			}(),
			verify: func(t *testing.T, req *Request) {
				if req.Method != "GET" || req.Target != "/" {
					t.Errorf("parsed %q %q", req.Method, req.Target)
				}
			},
		},
		{
			name: "body of exactly Content-Length bytes across chunks",
			writes: [][]byte{
				[]byte("POST /data HTTP/1.1\r\nContent-Length: 26\r\n\r\nabcde"),
				[]byte("fghijklmnopqrs"),
				[]byte("tuvwxyz"),
			},
			verify: func(t *testing.T, req *Request) {
				want := "abcdefghijklmnopqrstuvwxyz"
				if string(req.Body) != want {
					t.Errorf("body = %q, want %q", req.Body, want)
				}
			},
		},
		{
			name:   "version defaults to HTTP/1.1 with two tokens",
			writes: [][]byte{[]byte("GET /\r\n\r\n")},
			verify: func(t *testing.T, req *Request) {
				if req.Proto != "HTTP/1.1" {
					t.Errorf("proto = %q, want HTTP/1.1", req.Proto)
				}
			},
		},
		{
			name:   "method is upper-cased",
			writes: [][]byte{[]byte("get / HTTP/1.1\r\n\r\n")},
			verify: func(t *testing.T, req *Request) {
				if req.Method != "GET" {
					t.Errorf("method = %q, want GET", req.Method)
				}
			},
		},
		{
			name:    "request line with one token is malformed",
			writes:  [][]byte{[]byte("GET\r\n\r\n")},
			wantErr: ErrMalformedRequestLine,
		},
		{
			name:    "empty request line is malformed",
			writes:  [][]byte{[]byte("\r\n\r\n")},
			wantErr: ErrMalformedRequestLine,
		},
		{
			name: "repeated header last occurrence wins",
			writes: [][]byte{[]byte(
				"GET / HTTP/1.1\r\nX-Tag: first\r\nx-tag: second\r\n\r\n")},
			verify: func(t *testing.T, req *Request) {
				if got := req.Header("X-Tag"); got != "second" {
					t.Errorf("X-Tag = %q, want second", got)
				}
			},
		},
		{
			name: "line without colon is ignored",
			writes: [][]byte{[]byte(
				"GET / HTTP/1.1\r\nthis line has no colon\r\nHost: a\r\n\r\n")},
			verify: func(t *testing.T, req *Request) {
				if len(req.Headers) != 1 {
					t.Errorf("header count = %d, want 1", len(req.Headers))
				}
			},
		},
		{
			name: "non-numeric Content-Length means no body",
			writes: [][]byte{[]byte(
				"POST /data HTTP/1.1\r\nContent-Length: banana\r\n\r\n")},
			verify: func(t *testing.T, req *Request) {
				if len(req.Body) != 0 {
					t.Errorf("body length = %d, want 0", len(req.Body))
				}
			},
		},
		{
			name: "declared body over the limit is rejected without reading it",
			writes: [][]byte{[]byte(
				"POST /data HTTP/1.1\r\nContent-Length: 2000\r\n\r\n")},
			wantErr: ErrBodyTooLarge,
		},
		{
			name: "oversized header block",
			writes: [][]byte{[]byte(
				"GET / HTTP/1.1\r\nX-Pad: " + strings.Repeat("a", 4096) + "\r\n")},
			wantErr: ErrHeadersTooLarge,
		},
		{
			name:    "peer closes before header terminator",
			writes:  [][]byte{[]byte("GET / HTTP/1.1\r\nHost: a")},
			close:   true,
			wantErr: ErrPeerClosed,
		},
		{
			name: "peer closes during body",
			writes: [][]byte{[]byte(
				"POST /data HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc")},
			close:   true,
			wantErr: ErrPeerClosed,
		},
		{
			name:    "idle client times out",
			writes:  nil,
			limits:  &Limits{MaxBodySize: 1024, MaxHeaderSize: 2048, ReadChunk: 16, IdleTimeout: 100 * time.Millisecond},
			wantErr: ErrIdleTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lim := testLimits()
			if tt.limits != nil {
				lim = *tt.limits
			}
			conn := serve(t, tt.writes, tt.close)

			req, err := ReadRequest(conn, lim)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadRequest() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadRequest() error = %v", err)
			}
			if tt.verify != nil {
				tt.verify(t, req)
			}
		})
	}
}

func TestReadRequestSequentialOnSameConn(t *testing.T) {
	conn := serve(t, [][]byte{
		[]byte("GET /first HTTP/1.1\r\n\r\n"),
		[]byte("POST /second HTTP/1.1\r\nContent-Length: 2\r\n\r\nok"),
	}, false)
	lim := testLimits()

	first, err := ReadRequest(conn, lim)
	if err != nil {
		t.Fatalf("first ReadRequest() error = %v", err)
	}
	if first.Target != "/first" {
		t.Errorf("first target = %q", first.Target)
	}

	second, err := ReadRequest(conn, lim)
	if err != nil {
		t.Fatalf("second ReadRequest() error = %v", err)
	}
	if second.Target != "/second" {
		t.Errorf("second target = %q", second.Target)
	}
	if !bytes.Equal(second.Body, []byte("ok")) {
		t.Errorf("second body = %q, want ok", second.Body)
	}
}
