// Package config loads runtime configuration for the GuiDipper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment: GUIDIPPER_* variables, with a .env file in the working
//     directory loaded first. Variables already set are not overridden by
//     the file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend API URL
//	-d string   local database file
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations can be strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8000",
//	  "database_path": "guidipper.db",
//	  "request_timeout": "60s",
//	  "token_ttl": "30m",
//	  "log_file": "logs/guidipper.log",
//	  "log_level": "info",
//	  "telemetry_dir": "logs"
//	}
package config
