package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the GophTasks terminal client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - SessionDBPath: SQLite file holding the persisted session.
//   - RequestTimeout: upper bound for a single remote call.
//   - RollbackPolicy: "resync" or "snapshot", see tasksync.RollbackPolicy.
type Config struct {
	ServerEndpointAddr string
	SessionDBPath      string
	RequestTimeout     time.Duration
	RollbackPolicy     string
}

// LoadDefaults populates c with sensible defaults. The session database is
// scoped to the parent process, so each terminal keeps its own login.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionDBPath = DefaultSessionDBPath()
	c.RequestTimeout = 10 * time.Second
	c.RollbackPolicy = "resync"
}

func DefaultSessionDBPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("gophtasks-session-%d.db", os.Getppid()))
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
