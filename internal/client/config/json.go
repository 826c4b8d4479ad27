package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/guidipper/internal/flagx"
	"github.com/dmitrijs2005/guidipper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be strings like "30s" or integer nanoseconds. Absent fields keep the
// values already in Config.
type JsonConfig struct {
	APIURL         string          `json:"api_url"`
	DatabasePath   string          `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	TokenTTL       *timex.Duration `json:"token_ttl"`
	LogFile        string          `json:"log_file"`
	LogLevel       string          `json:"log_level"`
	TelemetryDir   *string         `json:"telemetry_dir"`
}

// parseJSON overlays cfg with the JSON file named by -c or -config in args.
// Without either flag nothing is loaded.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIURL != "" {
		cfg.APIURL = jc.APIURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.TokenTTL != nil {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.TelemetryDir != nil {
		cfg.TelemetryDir = *jc.TelemetryDir
	}
	return nil
}
