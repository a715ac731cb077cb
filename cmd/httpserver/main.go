// Httpserver is a from-scratch HTTP/1.1 server built directly on TCP
// sockets.
//
// It serves a small fixed route set (welcome page, query echo, static files,
// an in-memory JSON record collection) over persistent keep-alive
// connections, with all request framing and response serialization done by
// hand.
//
// Usage:
//
//	httpserver serve [flags]
//
// See 'httpserver serve --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/config"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/server"
	"github.com/PLayerNightQueen16/Beginner-HTTP-Server/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "httpserver",
	Short: "Beginner HTTP Server",
	Long: `A from-scratch HTTP/1.1 server built directly on TCP sockets.

The server implements its own request framing and response serialization
(no net/http): Content-Length-bounded bodies, keep-alive connection reuse
with idle timeouts and a per-connection request cap, and a fixed route set
covering a welcome page, a query echo, static file serving and CRUD over an
in-memory record collection.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	configPath  string
	host        string
	port        int
	staticDir   string
	logLevel    string
	idleTimeout int
	maxBody     int
	maxRequests int
	enableMDNS  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and block until a shutdown signal.

Configuration comes from built-in defaults, optionally overlaid by a yaml
config file (--config), with individual command-line flags taking final
precedence. The static file root is created on startup if it does not exist.`,
	Example: `  # Start with defaults (0.0.0.0:8080, ./static)
  httpserver serve

  # Custom port with verbose logging
  httpserver serve --port 9090 --log-level debug

  # Load a config file, override one field
  httpserver serve --config server.yaml --static-dir /srv/files

  # Announce the server over mDNS on the local network
  httpserver serve --mdns`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to yaml config file (optional)")
	serveCmd.Flags().StringVar(&host, "host", config.DefaultHost, "Bind address (0.0.0.0 = all interfaces)")
	serveCmd.Flags().IntVar(&port, "port", config.DefaultPort, "Server port")
	serveCmd.Flags().StringVar(&staticDir, "static-dir", config.DefaultStaticDir, "Root directory for static file serving")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().IntVar(&idleTimeout, "idle-timeout", config.DefaultIdleTimeoutSeconds, "Seconds to wait for the next request on a keep-alive connection")
	serveCmd.Flags().IntVar(&maxBody, "max-body-size", config.DefaultMaxBodySize, "Maximum request body size in bytes")
	serveCmd.Flags().IntVar(&maxRequests, "max-requests", config.DefaultMaxRequestsPerConn, "Maximum requests served per connection")
	serveCmd.Flags().BoolVar(&enableMDNS, "mdns", false, "Announce the server over mDNS")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags the user set explicitly win over the config file
	flagOverrides := map[string]func(){
		"host":          func() { cfg.Host = host },
		"port":          func() { cfg.Port = port },
		"static-dir":    func() { cfg.StaticDir = staticDir },
		"log-level":     func() { cfg.LogLevel = logLevel },
		"idle-timeout":  func() { cfg.IdleTimeoutSeconds = idleTimeout },
		"max-body-size": func() { cfg.MaxBodySize = maxBody },
		"max-requests":  func() { cfg.MaxRequestsPerConn = maxRequests },
		"mdns":          func() { cfg.MDNS = enableMDNS },
	}
	for name, apply := range flagOverrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("httpserver %s (commit: %s)\n", version.Version, version.Commit)
	},
}
