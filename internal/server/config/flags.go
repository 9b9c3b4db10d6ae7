package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN (empty for in-memory storage)
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-l float    artificial latency scale
//	-r int      login attempts per minute per email
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so the -c/-config JSON flag does not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.Float64Var(&config.LatencyScale, "l", config.LatencyScale, "artificial latency scale (0 disables)")
	fs.IntVar(&config.LoginAttemptsPerMinute, "r", config.LoginAttemptsPerMinute, "login attempts per minute per email")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
