// Package config loads runtime configuration for the gophforum CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config.
//  3. Command-line flags that were set explicitly.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds. Absent keys keep their default:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "session_db_path": "gophforum_session.db",
//	  "locale_file": "",
//	  "output_format": "table",
//	  "log_level": "warn"
//	}
package config
