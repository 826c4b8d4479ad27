package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL         = "GUIDIPPER_API_URL"
	EnvDatabasePath   = "GUIDIPPER_DB_PATH"
	EnvRequestTimeout = "GUIDIPPER_REQUEST_TIMEOUT"
	EnvTokenTTL       = "GUIDIPPER_TOKEN_TTL"
	EnvLogFile        = "GUIDIPPER_LOG_FILE"
	EnvLogLevel       = "GUIDIPPER_LOG_LEVEL"
	EnvTelemetryDir   = "GUIDIPPER_TELEMETRY_DIR"
)

// parseEnv loads dotenvPath (a missing file is fine) and overlays cfg with
// the GUIDIPPER_* variables that are set. Variables already present in the
// process environment win over the file.
func parseEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	setString(&cfg.APIURL, EnvAPIURL)
	setString(&cfg.DatabasePath, EnvDatabasePath)
	setString(&cfg.LogFile, EnvLogFile)
	setString(&cfg.LogLevel, EnvLogLevel)
	if v, ok := os.LookupEnv(EnvTelemetryDir); ok {
		cfg.TelemetryDir = v
	}

	if err := setDuration(&cfg.RequestTimeout, EnvRequestTimeout); err != nil {
		return err
	}
	return setDuration(&cfg.TokenTTL, EnvTokenTTL)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
