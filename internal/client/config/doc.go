// Package config loads runtime configuration for the GophTasks client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-s string   path of the session database
//	-t int      request timeout (seconds)
//	-r string   rollback policy: resync or snapshot
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "10s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "session_db_path": "/tmp/gophtasks.db",
//	  "request_timeout": "10s",
//	  "rollback_policy": "snapshot"
//	}
//
// Fields missing from the file keep their defaults.
package config
