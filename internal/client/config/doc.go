// Package config loads runtime configuration for the portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      session poll interval (seconds)
//	-t int      per-request timeout (seconds)
//	-e          embedded mode: announce logins on stdout
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "session_poll_interval": "2s",
//	  "request_timeout": "10s",
//	  "embedded": false
//	}
package config
