// Package config loads runtime configuration for the Family Account client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, after loading an optional dotenv file (-env, or ./.env).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     backend base URL (env SERVER_URL)
//	-t duration   request timeout
//	-d string     local database path
//	-l string     log level
//	-ephemeral    keep the session token in memory only
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "request_timeout": "15s",
//	  "database_path": "familyaccount.db",
//	  "search_debounce": "500ms",
//	  "search_min_length": 3,
//	  "log_level": "warn"
//	}
//
// Trailing slashes of the server URL are removed after all sources are
// applied.
package config
