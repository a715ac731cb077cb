// Package config defines the process-level server configuration.
//
// Configuration is loaded from an optional yaml file and overlaid on built-in
// defaults; command-line flags may override individual fields on top of that.
//
// # Example config file
//
//	host: 0.0.0.0
//	port: 8080
//	static_dir: ./static
//	max_body_size: 5242880
//	idle_timeout_seconds: 15
//	max_requests_per_conn: 100
//	log_level: info
//	mdns: true
//
// All keys are optional; absent keys keep their defaults. Call Validate
// before handing the config to the server.
package config
