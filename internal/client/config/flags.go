package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/mybank/internal/flagx"
)

var knownFlags = []string{"-a", "-r", "-s", "-d", "-redis", "-t", "-l", "-data"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      base URL of the banking backend
//	-r string      role: admin, customer or teller
//	-s string      local store driver: sqlite or redis
//	-d string      SQLite DSN
//	-redis string  Redis URL for the redis store
//	-t int         request timeout in seconds
//	-l string      log level
//	-data string   data directory for exports
//
// Other arguments (for example -c) are filtered out first, so they never
// reach this FlagSet.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the banking backend")
	fs.StringVar(&cfg.Role, "r", cfg.Role, "dashboard role: admin, customer or teller")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "local store driver: sqlite or redis")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN for the local store")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for the local store")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory for exported files")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
