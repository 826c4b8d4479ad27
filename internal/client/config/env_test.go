package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv_Variables(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env:8000")
	t.Setenv(EnvRequestTimeout, "2m")
	t.Setenv(EnvTokenTTL, "45m")
	t.Setenv(EnvTelemetryDir, "")

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, ""))

	assert.Equal(t, "http://env:8000", cfg.APIURL)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, 45*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "", cfg.TelemetryDir)
	assert.Equal(t, "guidipper.db", cfg.DatabasePath)
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"GUIDIPPER_DB_PATH=dotenv.db\nGUIDIPPER_LOG_FILE=/tmp/gd.log\n",
	), 0o600))

	// godotenv sets process variables; make sure they are removed afterwards
	t.Setenv(EnvDatabasePath, "")
	t.Setenv(EnvLogFile, "")
	require.NoError(t, os.Unsetenv(EnvDatabasePath))
	require.NoError(t, os.Unsetenv(EnvLogFile))

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, path))
	assert.Equal(t, "dotenv.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/gd.log", cfg.LogFile)
}

func Test_parseEnv_ProcessWinsOverDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GUIDIPPER_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv(EnvLogLevel, "warn")

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, path))
	assert.Equal(t, "warn", cfg.LogLevel)
}

func Test_parseEnv_MissingDotenvIsFine(t *testing.T) {
	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, defaults(), cfg)
}

func Test_parseEnv_BadDuration(t *testing.T) {
	t.Setenv(EnvTokenTTL, "half an hour")
	cfg := defaults()
	assert.Error(t, parseEnv(&cfg, ""))
}
