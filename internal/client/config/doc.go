// Package config loads runtime configuration for the globalstats client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. GLOBALSTATS_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-u string       API base URL
//	-id string      client id
//	-secret string  client secret
//	-name string    default display name
//	-v              verbose logging
//	-db string      SQLite database path
//	-t duration     request timeout
//
// # JSON schema
//
// Durations are either strings like "30s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.globalstats.io",
//	  "client_id": "...",
//	  "client_secret": "...",
//	  "default_username": "anonymous",
//	  "verbose": false,
//	  "database_path": "globalstats.db",
//	  "request_timeout": "30s",
//	  "otel_endpoint": ""
//	}
package config
