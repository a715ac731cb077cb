package router

import (
	"encoding/json"

	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/protocol"
)

// jsonResponse builds a response whose body is the JSON encoding of v.
func jsonResponse(status int, reason string, v any) *protocol.Response {
	body, err := json.Marshal(v)
	if err != nil {
		// Handler payloads are maps, slices and records; this only fires
		// on an unmarshalable payload smuggled into the store
		body = []byte(`{"error":"Failed to encode response"}`)
		status, reason = 500, "Internal Server Error"
	}
	resp := protocol.NewResponse(status, reason, body)
	resp.SetHeader("Content-Type", "application/json; charset=utf-8")
	return resp
}

// errorResponse builds the uniform JSON error body {"error": msg}.
func errorResponse(status int, reason, msg string) *protocol.Response {
	return jsonResponse(status, reason, map[string]string{"error": msg})
}

// methodNotAllowed is the shared 405 for handlers that reject the method.
func methodNotAllowed() *protocol.Response {
	return errorResponse(405, "Method Not Allowed", "Method Not Allowed")
}
