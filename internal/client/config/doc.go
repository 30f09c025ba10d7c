// Package config loads runtime configuration for the MyBank console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "role": "teller",
//	  "store_driver": "sqlite",
//	  "database_dsn": "mybank.db",
//	  "redis_url": "",
//	  "request_timeout": "10s",
//	  "data_dir": ".",
//	  "log_level": "warn",
//	  "update_delay": "1500ms",
//	  "refresh_delay": "2s",
//	  "create_delay": "1s"
//	}
//
// Call (*Config).Validate before using the result.
package config
