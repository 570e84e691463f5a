// Package config loads runtime configuration for the Jafa CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with JAFA_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   backend base URL, e.g. http://localhost:5000
//	-t int      request timeout (seconds)
//	-d string   path of the local cookie database
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "backend_url": "http://localhost:5000",
//	  "request_timeout": "10s",
//	  "database_path": "jafa.db",
//	  "toast_ttl": "5s",
//	  "toast_capacity": 5,
//	  "log_level": "warn"
//	}
//
// The backend URL is the only required value; LoadConfig returns
// ErrMissingBackendURL when no source provides it and the CLI exits.
package config
