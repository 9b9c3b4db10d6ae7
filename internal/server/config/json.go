package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
	"github.com/dmitrijs2005/gophtasks/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted. Absent
// fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC       string          `json:"endpoint_addr_grpc"`
	DatabaseDSN            *string         `json:"database_dsn"`
	SecretKey              string          `json:"secret_key"`
	TokenValidityDuration  *timex.Duration `json:"token_validity_duration"`
	LatencyScale           *float64        `json:"latency_scale"`
	LoginAttemptsPerMinute *int            `json:"login_attempts_per_minute"`
}

// parseJson loads configuration values from the file named by the -c or
// -config flag into config. Without the flag nothing is loaded. An unreadable
// file or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.LatencyScale != nil {
		config.LatencyScale = *c.LatencyScale
	}
	if c.LoginAttemptsPerMinute != nil {
		config.LoginAttemptsPerMinute = *c.LoginAttemptsPerMinute
	}
}
