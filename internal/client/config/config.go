package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/mybank/internal/common"
)

// Role names accepted by -r.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleTeller   = "teller"
)

// Store drivers accepted by -s.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds runtime settings for the MyBank console.
//
// Fields:
//   - ServerURL: base URL of the banking REST backend.
//   - Role: which dashboard to open (admin, customer, teller).
//   - StoreDriver, DatabaseDSN, RedisURL: where session records and
//     local drafts are kept.
//   - RequestTimeout: upper bound for a single backend call.
//   - DataDir: directory for exported files.
//   - LogLevel: slog level name for the diagnostic trace.
//   - UpdateDelay, RefreshDelay, CreateDelay: how long a success message
//     stays on screen before dependent views reload.
type Config struct {
	ServerURL      string
	Role           string
	StoreDriver    string
	DatabaseDSN    string
	RedisURL       string
	RequestTimeout time.Duration
	DataDir        string
	LogLevel       string
	UpdateDelay    time.Duration
	RefreshDelay   time.Duration
	CreateDelay    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Role = RoleCustomer
	c.StoreDriver = StoreSQLite
	c.DatabaseDSN = "mybank.db"
	c.RedisURL = ""
	c.RequestTimeout = 10 * time.Second
	c.DataDir = "."
	c.LogLevel = "warn"
	c.UpdateDelay = 1500 * time.Millisecond
	c.RefreshDelay = 2000 * time.Millisecond
	c.CreateDelay = 1000 * time.Millisecond
}

// Validate reports settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.Role {
	case RoleAdmin, RoleCustomer, RoleTeller:
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownRole, c.Role)
	}
	switch c.StoreDriver {
	case StoreSQLite:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%w: redis store needs a redis url", common.ErrUnknownStoreDriver)
		}
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownStoreDriver, c.StoreDriver)
	}
	return nil
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
