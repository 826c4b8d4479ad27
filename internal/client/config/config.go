package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the GuiDipper client.
//
// Fields:
//   - APIURL: base URL of the backend API, without a trailing slash.
//   - DatabasePath: SQLite file backing the local key/value store.
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenTTL: how long a login is trusted locally.
//   - LogFile, LogLevel: rotating JSON log destination and threshold.
//   - TelemetryDir: where trace and metric exports are written; empty
//     disables telemetry.
type Config struct {
	APIURL         string
	DatabasePath   string
	RequestTimeout time.Duration
	TokenTTL       time.Duration
	LogFile        string
	LogLevel       string
	TelemetryDir   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:8000"
	c.DatabasePath = "guidipper.db"
	c.RequestTimeout = 60 * time.Second
	c.TokenTTL = 30 * time.Minute
	c.LogFile = "logs/guidipper.log"
	c.LogLevel = "info"
	c.TelemetryDir = "logs"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a .env file in the working
// directory) and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := os.Args[1:]
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
