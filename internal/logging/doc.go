// Package logging provides structured logging for the HTTP server.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the server: general leveled logging plus
// specialized functions for connection and request events.
//
// # Log Levels
//
//   - Debug: Detailed protocol info (frame boundaries, keep-alive decisions)
//   - Info: Normal operations (connections, requests, state changes)
//   - Warn: Non-fatal issues (bad requests, write failures)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Server listening",
//	    zap.String("addr", "0.0.0.0:8080"),
//	    zap.String("static_dir", "./static"),
//	)
//
// # Specialized Logging
//
// Connection lifecycle:
//
//	logging.LogConnection(remoteAddr, "connection_accepted")
//	logging.LogConnection(remoteAddr, "connection_closed")
//
// Per-request access log:
//
//	logging.LogRequest(remoteAddr, "GET", "/echo?message=hi", "HTTP/1.1", 200, 4, 0)
//
// # Configuration
//
// Initialize logging at server startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is configured (neither argument nor HTTPSERVER_LOG_LEVEL),
// the logger is a no-op, which keeps test output clean.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
