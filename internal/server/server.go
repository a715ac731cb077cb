package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/config"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/discovery"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/logging"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/router"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/store"
	"go.uber.org/zap"
)

// Server owns the listening socket and hands every accepted connection to
// its own goroutine running the connection supervisor loop.
type Server struct {
	cfg         *config.Config
	listener    net.Listener
	dispatcher  *router.Dispatcher
	store       *store.Store
	announcer   *discovery.Announcer
	wg          sync.WaitGroup
	mu          sync.Mutex
	activeConns map[string]net.Conn
}

// New creates a new Server instance
func New(cfg *config.Config) (*Server, error) {
	// Initialize logging
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Make sure the static root exists before the first request needs it
	if err := os.MkdirAll(cfg.StaticDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create static directory %s: %w", cfg.StaticDir, err)
	}

	st := store.New()
	return &Server{
		cfg:         cfg,
		dispatcher:  router.New(st, cfg.StaticDir),
		store:       st,
		activeConns: make(map[string]net.Conn),
	}, nil
}

// Listen binds the listening socket. After Listen returns, Addr reports the
// bound address (useful when the configured port is 0).
func (s *Server) Listen() error {
	lc := net.ListenConfig{Control: reuseAddrControl}
	listener, err := lc.Listen(context.Background(), "tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	s.listener = listener

	logging.Info("Server listening for connections",
		zap.String("addr", listener.Addr().String()),
		zap.String("static_dir", s.cfg.StaticDir),
		zap.Int("max_body_size", s.cfg.MaxBodySize),
		zap.Duration("idle_timeout", s.cfg.IdleTimeout()),
		zap.Int("max_requests_per_conn", s.cfg.MaxRequestsPerConn),
		// listen(2) backlog is governed by the kernel somaxconn setting
		zap.Int("requested_backlog", s.cfg.Backlog),
	)
	return nil
}

// Addr returns the bound listener address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed. Each accepted
// connection is handled in its own goroutine; Serve itself never blocks on a
// connection.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Listener was closed during shutdown
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			logging.Error("Failed to accept connection", zap.Error(err))
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// Start binds the socket and blocks serving until a shutdown signal or a
// fatal accept error.
func (s *Server) Start() error {
	logging.Info("Starting Beginner HTTP Server",
		zap.String("addr", s.cfg.Addr()),
		zap.String("log_level", s.cfg.LogLevel),
	)

	if err := s.Listen(); err != nil {
		return err
	}

	if s.cfg.MDNS {
		announcer, err := discovery.Announce(s.cfg.MDNSInstance, s.cfg.Port)
		if err != nil {
			logging.Warn("mDNS announcement failed, continuing without it", zap.Error(err))
		} else {
			s.announcer = announcer
			logging.Info("Announced server over mDNS",
				zap.String("service", discovery.ServiceType),
				zap.Int("port", s.cfg.Port),
			)
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve()
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if s.announcer != nil {
		s.announcer.Shutdown()
	}

	// Close listener to stop accepting new connections
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			logging.Error("Error closing listener", zap.Error(err))
		}
	}

	// Close all active connections
	s.mu.Lock()
	for addr, conn := range s.activeConns {
		logging.Info("Closing active connection", zap.String("remote_addr", addr))
		_ = conn.Close()
	}
	s.mu.Unlock()

	// Wait for all connection goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	case <-time.After(10 * time.Second):
		logging.Warn("Shutdown timeout after 10 seconds, forcing close")
	}

	logging.Sync()

	return nil
}

// GetActiveConnections returns the number of active connections
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}
