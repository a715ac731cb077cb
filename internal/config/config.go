package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults mirror the limits of the service this server replaces.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8080
	DefaultStaticDir          = "./static"
	DefaultMaxBodySize        = 5 * 1024 * 1024 // 5 MiB body limit
	DefaultReadChunk          = 4096
	DefaultIdleTimeoutSeconds = 15
	DefaultMaxRequestsPerConn = 100
	DefaultBacklog            = 128

	// HeaderSlack is the extra room allowed for the header block on top of
	// the body limit when max_header_size is not set explicitly.
	HeaderSlack = 8192
)

// Config holds the full process-level server configuration.
// Zero values are replaced by defaults in Default and Load.
type Config struct {
	Host               string `yaml:"host"`                  // Bind address (empty or 0.0.0.0 = all interfaces)
	Port               int    `yaml:"port"`                  // TCP port to listen on (0 = OS-assigned)
	StaticDir          string `yaml:"static_dir"`            // Root directory for /static file serving
	MaxBodySize        int    `yaml:"max_body_size"`         // Maximum accepted request body, bytes
	MaxHeaderSize      int    `yaml:"max_header_size"`       // Maximum accepted header block, bytes (0 = max_body_size + slack)
	ReadChunk          int    `yaml:"read_chunk"`            // Socket read size per recv
	IdleTimeoutSeconds int    `yaml:"idle_timeout_seconds"`  // Wait for the next request byte before closing
	MaxRequestsPerConn int    `yaml:"max_requests_per_conn"` // Requests served on one keep-alive connection
	Backlog            int    `yaml:"backlog"`               // Requested accept backlog (kernel somaxconn still governs)
	LogLevel           string `yaml:"log_level"`             // debug, info, warn, error (empty = silent)
	MDNS               bool   `yaml:"mdns"`                  // Announce the server over mDNS
	MDNSInstance       string `yaml:"mdns_instance"`         // mDNS instance name (empty = derived from hostname)
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		StaticDir:          DefaultStaticDir,
		MaxBodySize:        DefaultMaxBodySize,
		ReadChunk:          DefaultReadChunk,
		IdleTimeoutSeconds: DefaultIdleTimeoutSeconds,
		MaxRequestsPerConn: DefaultMaxRequestsPerConn,
		Backlog:            DefaultBacklog,
		LogLevel:           "info",
	}
}

// Load reads a yaml config file and overlays it on the defaults.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d (must be 0-65535)", c.Port)
	}
	if c.StaticDir == "" {
		return fmt.Errorf("static_dir must not be empty")
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf("max_body_size must be positive, got %d", c.MaxBodySize)
	}
	if c.MaxHeaderSize < 0 {
		return fmt.Errorf("max_header_size must not be negative, got %d", c.MaxHeaderSize)
	}
	if c.ReadChunk <= 0 {
		return fmt.Errorf("read_chunk must be positive, got %d", c.ReadChunk)
	}
	if c.IdleTimeoutSeconds <= 0 {
		return fmt.Errorf("idle_timeout_seconds must be positive, got %d", c.IdleTimeoutSeconds)
	}
	if c.MaxRequestsPerConn <= 0 {
		return fmt.Errorf("max_requests_per_conn must be positive, got %d", c.MaxRequestsPerConn)
	}
	if c.Backlog <= 0 {
		return fmt.Errorf("backlog must be positive, got %d", c.Backlog)
	}
	return nil
}

// Addr returns the host:port string to bind.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IdleTimeout returns the idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// MaxHeader returns the header-block ceiling: the explicit max_header_size
// when set, otherwise max_body_size plus a fixed slack.
func (c *Config) MaxHeader() int {
	if c.MaxHeaderSize > 0 {
		return c.MaxHeaderSize
	}
	return c.MaxBodySize + HeaderSlack
}
