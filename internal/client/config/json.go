package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mybank/internal/flagx"
	"github.com/dmitrijs2005/mybank/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so they may be written as "1500ms" or as nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	Role           string         `json:"role"`
	StoreDriver    string         `json:"store_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	RedisURL       string         `json:"redis_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DataDir        string         `json:"data_dir"`
	LogLevel       string         `json:"log_level"`
	UpdateDelay    timex.Duration `json:"update_delay"`
	RefreshDelay   timex.Duration `json:"refresh_delay"`
	CreateDelay    timex.Duration `json:"create_delay"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Keys that
// are absent from the file leave the current value alone. Read and decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.Role, jc.Role)
	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.RedisURL, jc.RedisURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.UpdateDelay.Duration > 0 {
		cfg.UpdateDelay = jc.UpdateDelay.Duration
	}
	if jc.RefreshDelay.Duration > 0 {
		cfg.RefreshDelay = jc.RefreshDelay.Duration
	}
	if jc.CreateDelay.Duration > 0 {
		cfg.CreateDelay = jc.CreateDelay.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
