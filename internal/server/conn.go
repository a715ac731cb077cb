package server

import (
	"encoding/json"
	"net"

	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/logging"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/protocol"
	"go.uber.org/zap"
)

// handleConnection runs the per-connection supervisor loop: read one request,
// dispatch it, write the response, then either loop for the next request or
// close. The connection is closed exactly once, whichever path ends the loop.
func (s *Server) handleConnection(conn net.Conn) {
	remoteAddr := conn.RemoteAddr().String()

	// Track active connection
	s.mu.Lock()
	s.activeConns[remoteAddr] = conn
	s.mu.Unlock()

	defer func() {
		_ = conn.Close()
		s.mu.Lock()
		delete(s.activeConns, remoteAddr)
		s.mu.Unlock()
		logging.LogConnection(remoteAddr, "connection_closed")
	}()

	logging.LogConnection(remoteAddr, "connection_accepted")

	limits := protocol.Limits{
		MaxBodySize:   s.cfg.MaxBodySize,
		MaxHeaderSize: s.cfg.MaxHeader(),
		ReadChunk:     s.cfg.ReadChunk,
		IdleTimeout:   s.cfg.IdleTimeout(),
	}

	served := 0
	for {
		req, err := protocol.ReadRequest(conn, limits)
		if err != nil {
			if protocol.IsSilentClose(err) {
				// Idle keep-alive timeout or abrupt disconnect: close quietly
				logging.Debug("Closing connection without response",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
				return
			}
			logging.Warn("Bad request",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			// Best effort: the peer may already be gone
			s.writeResponse(conn, framingErrorResponse(err))
			return
		}

		var resp *protocol.Response
		if req.Method == "OPTIONS" {
			// CORS preflight is answered here, bypassing the dispatcher
			resp = protocol.NewResponse(204, "No Content", nil)
			resp.SetHeader("Content-Type", "text/plain")
		} else {
			resp = s.dispatcher.Dispatch(req)
		}

		if err := s.writeResponse(conn, resp); err != nil {
			// Connection presumed broken; nothing to salvage
			logging.Warn("Client disconnected during send",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}

		served++
		logging.LogRequest(remoteAddr, req.Method, req.Target, req.Proto,
			resp.Status, len(req.Headers), len(req.Body))

		if !s.keepAlive(req, served) {
			return
		}
	}
}

// keepAlive decides whether the connection survives into the next request.
// Keep-alive is the default; it is withdrawn when an HTTP/1.0 client did not
// ask for it, when any client asked for "Connection: close", or when the
// connection has served its request quota.
func (s *Server) keepAlive(req *protocol.Request, served int) bool {
	if req.Proto == "HTTP/1.0" && !req.WantsKeepAlive() {
		return false
	}
	if req.WantsClose() {
		return false
	}
	if served >= s.cfg.MaxRequestsPerConn {
		logging.Debug("Request quota reached, closing connection",
			zap.Int("served", served),
		)
		return false
	}
	return true
}

// writeResponse serializes and writes resp. Writes run without a deadline:
// once a response is computed, a failure to deliver it is fatal to the
// connection, not retried.
func (s *Server) writeResponse(conn net.Conn, resp *protocol.Response) error {
	_, err := conn.Write(resp.Build())
	return err
}

// framingErrorResponse builds the 400 sent for framing failures that still
// deserve an answer (oversized headers or body, malformed request line).
func framingErrorResponse(err error) *protocol.Response {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	resp := protocol.NewResponse(400, "Bad Request", body)
	resp.SetHeader("Content-Type", "application/json; charset=utf-8")
	return resp
}
