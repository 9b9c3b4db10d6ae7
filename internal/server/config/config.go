// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the GophTasks server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: session token lifetime; zero issues tokens without expiry.
//   - LatencyScale: multiplier for the artificial per-operation latency; 0 disables it.
//   - LoginAttemptsPerMinute: per-email login budget; 0 disables limiting.
type Config struct {
	EndpointAddrGRPC       string
	DatabaseDSN            string
	SecretKey              string
	TokenValidityDuration  time.Duration
	LatencyScale           float64
	LoginAttemptsPerMinute int
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.LatencyScale = 1
	c.LoginAttemptsPerMinute = 10
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
