package router

import (
	"net/url"
	"strings"

	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/logging"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/protocol"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/store"
	"go.uber.org/zap"
)

// Dispatcher maps parsed requests onto route handlers. It is stateless apart
// from the record store and the static file root it serves from.
type Dispatcher struct {
	store     *store.Store
	staticDir string
}

// New creates a dispatcher backed by the given record store and static root.
func New(st *store.Store, staticDir string) *Dispatcher {
	return &Dispatcher{
		store:     st,
		staticDir: staticDir,
	}
}

// Dispatch routes one request to its handler and returns the response.
//
// Matching is ordered and first-match-wins:
//
//  1. exact "/"                      -> root page
//  2. prefix "/echo"                 -> query echo
//  3. prefix "/static/"              -> file serving
//  4. exact "/data" with POST or PUT -> create
//  5. first segment "data"           -> list/get (GET), delete (DELETE),
//     create (POST/PUT)
//  6. anything else                  -> 404
//
// Dispatch never panics: any fault inside a handler is downgraded to a 500
// response at this boundary.
func (d *Dispatcher) Dispatch(req *protocol.Request) (resp *protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Panic in dispatcher",
				zap.String("method", req.Method),
				zap.String("target", req.Target),
				zap.Any("panic", r),
			)
			resp = errorResponse(500, "Internal Server Error", "Unhandled server error")
		}
	}()

	u, err := url.Parse(req.Target)
	if err != nil {
		return errorResponse(400, "Bad Request", "Invalid request target")
	}
	path := u.Path
	query := u.Query()
	segments := splitSegments(path)

	switch {
	case path == "/":
		return d.handleRoot(req)

	case strings.HasPrefix(path, "/echo"):
		return d.handleEcho(req, query)

	case strings.HasPrefix(path, "/static/"):
		return d.handleStatic(req, strings.TrimPrefix(path, "/static/"))

	case path == "/data" && (req.Method == "POST" || req.Method == "PUT"):
		return d.handleCreate(req)

	case len(segments) > 0 && segments[0] == "data":
		switch req.Method {
		case "GET":
			return d.handleGetData(segments)
		case "DELETE":
			return d.handleDeleteData(segments)
		case "POST", "PUT":
			return d.handleCreate(req)
		}
	}

	return errorResponse(404, "Not Found", "Route not found")
}

// splitSegments splits a path into its non-empty segments.
func splitSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
