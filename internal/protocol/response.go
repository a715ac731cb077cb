package protocol

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// ServerName is the Server header value stamped on every response.
const ServerName = "BeginnerHTTPServer/1.0"

// httpDateFormat is RFC 1123 with an explicit GMT zone, as the Date header
// requires.
const httpDateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Header is one response header field. Responses keep headers as an ordered
// list so the wire output preserves insertion order.
type Header struct {
	Name  string
	Value string
}

// Response is one HTTP response ready to be serialized.
type Response struct {
	Status  int
	Reason  string
	Headers []Header
	Body    []byte
}

// NewResponse creates a response with the given status line and body.
func NewResponse(status int, reason string, body []byte) *Response {
	return &Response{
		Status: status,
		Reason: reason,
		Body:   body,
	}
}

// SetHeader sets a header field, replacing an existing field with the same
// name or appending at the end. Names are matched exactly as given.
func (r *Response) SetHeader(name, value string) {
	for i := range r.Headers {
		if r.Headers[i].Name == name {
			r.Headers[i].Value = value
			return
		}
	}
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
}

// HeaderValue returns the value of a header field, or "" when absent.
func (r *Response) HeaderValue(name string) string {
	for i := range r.Headers {
		if r.Headers[i].Name == name {
			return r.Headers[i].Value
		}
	}
	return ""
}

func (r *Response) hasHeader(name string) bool {
	for i := range r.Headers {
		if r.Headers[i].Name == name {
			return true
		}
	}
	return false
}

// setDefault appends a header only when no field with that name is set yet.
func (r *Response) setDefault(name, value string) {
	if !r.hasHeader(name) {
		r.Headers = append(r.Headers, Header{Name: name, Value: value})
	}
}

// Build serializes the response into wire bytes: status line, headers in
// insertion order with defaults appended for anything not explicitly set,
// blank line, body. Content-Length always reflects the exact body length.
// Header values are emitted as-is; callers are responsible for well-formed
// values.
func (r *Response) Build() []byte {
	r.setDefault("Date", time.Now().UTC().Format(httpDateFormat))
	r.setDefault("Server", ServerName)
	r.setDefault("Content-Length", strconv.Itoa(len(r.Body)))
	r.setDefault("Content-Type", "text/plain; charset=utf-8")
	r.setDefault("Access-Control-Allow-Origin", "*")
	r.setDefault("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	r.setDefault("Access-Control-Allow-Headers", "Content-Type, Authorization")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", r.Status, r.Reason)
	for _, h := range r.Headers {
		buf.WriteString(h.Name)
		buf.WriteString(": ")
		buf.WriteString(h.Value)
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.Write(r.Body)

	return buf.Bytes()
}
