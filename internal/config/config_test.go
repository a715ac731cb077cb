package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Host != "0.0.0.0" || cfg.Port != 8080 {
		t.Errorf("default addr = %s", cfg.Addr())
	}
	if cfg.MaxBodySize != 5*1024*1024 {
		t.Errorf("MaxBodySize = %d", cfg.MaxBodySize)
	}
	if cfg.MaxHeader() != cfg.MaxBodySize+HeaderSlack {
		t.Errorf("MaxHeader() = %d, want body limit plus slack", cfg.MaxHeader())
	}
	if cfg.IdleTimeout() != 15*time.Second {
		t.Errorf("IdleTimeout() = %v", cfg.IdleTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 9090
static_dir: /srv/files
max_body_size: 1024
log_level: debug
mdns: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 9090 || cfg.StaticDir != "/srv/files" || cfg.LogLevel != "debug" || !cfg.MDNS {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// Keys absent from the file keep defaults
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want default", cfg.Host)
	}
	if cfg.MaxRequestsPerConn != DefaultMaxRequestsPerConn {
		t.Errorf("MaxRequestsPerConn = %d, want default", cfg.MaxRequestsPerConn)
	}
	// Derived ceiling follows the overridden body limit
	if cfg.MaxHeader() != 1024+HeaderSlack {
		t.Errorf("MaxHeader() = %d, want %d", cfg.MaxHeader(), 1024+HeaderSlack)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed yaml should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"port zero is OS-assigned", func(c *Config) { c.Port = 0 }, false},
		{"negative port", func(c *Config) { c.Port = -1 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"empty static dir", func(c *Config) { c.StaticDir = "" }, true},
		{"zero body limit", func(c *Config) { c.MaxBodySize = 0 }, true},
		{"negative header limit", func(c *Config) { c.MaxHeaderSize = -1 }, true},
		{"zero read chunk", func(c *Config) { c.ReadChunk = 0 }, true},
		{"zero idle timeout", func(c *Config) { c.IdleTimeoutSeconds = 0 }, true},
		{"zero request cap", func(c *Config) { c.MaxRequestsPerConn = 0 }, true},
		{"zero backlog", func(c *Config) { c.Backlog = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
