package router

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/logging"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/protocol"
	"go.uber.org/zap"
)

const welcomePage = "<h1>Welcome to Beginner HTTP Server</h1>\n" +
	"<p>Endpoints: /echo, /data, /static</p>"

// handleRoot serves the welcome page. GET only.
func (d *Dispatcher) handleRoot(req *protocol.Request) *protocol.Response {
	if req.Method != "GET" {
		return methodNotAllowed()
	}
	resp := protocol.NewResponse(200, "OK", []byte(welcomePage))
	resp.SetHeader("Content-Type", "text/html; charset=utf-8")
	return resp
}

// handleEcho echoes the "message" query parameter back as JSON. GET only.
// A missing parameter echoes the empty string.
func (d *Dispatcher) handleEcho(req *protocol.Request, query url.Values) *protocol.Response {
	if req.Method != "GET" {
		return methodNotAllowed()
	}
	return jsonResponse(200, "OK", map[string]string{"message": query.Get("message")})
}

// handleStatic serves a file from under the static root. The subpath arrives
// percent-decoded; it is normalized against the root so ".." sequences and
// absolute paths cannot escape it. GET only.
func (d *Dispatcher) handleStatic(req *protocol.Request, subpath string) *protocol.Response {
	if req.Method != "GET" {
		return methodNotAllowed()
	}

	// Cleaning with a rooted path collapses any ".." above the top before
	// the leading separator is stripped
	safe := strings.TrimPrefix(filepath.Clean("/"+filepath.FromSlash(subpath)), string(filepath.Separator))
	full := filepath.Join(d.staticDir, safe)

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return errorResponse(404, "Not Found", "Static file not found")
	}
	content, err := os.ReadFile(full)
	if err != nil {
		logging.Error("Failed to read static file",
			zap.String("path", full),
			zap.Error(err),
		)
		return errorResponse(500, "Internal Server Error", "Error reading static file")
	}

	resp := protocol.NewResponse(200, "OK", content)
	resp.SetHeader("Content-Type", contentTypeFor(full))
	return resp
}

// contentTypeFor infers the content type from the file extension.
func contentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// handleCreate stores a JSON payload and answers 201 with the assigned id.
// POST and PUT only; requires an application/json Content-Type. An empty
// body counts as an empty object.
func (d *Dispatcher) handleCreate(req *protocol.Request) *protocol.Response {
	if req.Method != "POST" && req.Method != "PUT" {
		return methodNotAllowed()
	}
	if !strings.Contains(req.Header("Content-Type"), "application/json") {
		return errorResponse(400, "Bad Request", "Content-Type must be application/json")
	}

	body := req.Body
	if len(body) == 0 {
		body = []byte("{}")
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return errorResponse(400, "Bad Request", "Invalid JSON body")
	}

	id := d.store.Append(payload)
	return jsonResponse(201, "Created", map[string]any{"status": "created", "id": id})
}

// handleGetData answers GET /data (list all) and GET /data/{id} (lookup).
// A non-numeric id is a 400, an unknown id a 404. Any other shape under
// /data lists everything.
func (d *Dispatcher) handleGetData(segments []string) *protocol.Response {
	if len(segments) == 2 {
		id, err := strconv.Atoi(segments[1])
		if err != nil {
			return errorResponse(400, "Bad Request", "Invalid id")
		}
		record, ok := d.store.Get(id)
		if !ok {
			return errorResponse(404, "Not Found", "Item not found")
		}
		return jsonResponse(200, "OK", record)
	}

	return jsonResponse(200, "OK", d.store.All())
}

// handleDeleteData answers DELETE /data/{id}. The id segment is mandatory;
// a missing or non-numeric id is a 400, an unknown id a 404.
func (d *Dispatcher) handleDeleteData(segments []string) *protocol.Response {
	if len(segments) == 2 {
		id, err := strconv.Atoi(segments[1])
		if err != nil {
			return errorResponse(400, "Bad Request", "Invalid id")
		}
		if !d.store.Delete(id) {
			return errorResponse(404, "Not Found", "Item not found")
		}
		return jsonResponse(200, "OK", map[string]string{"status": "deleted"})
	}

	return errorResponse(400, "Bad Request", "No id provided")
}
