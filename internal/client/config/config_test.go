package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8000", c.APIURL)
	assert.Equal(t, "guidipper.db", c.DatabasePath)
	assert.Equal(t, 60*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Minute, c.TokenTTL)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_url":       "http://json:1",
		"database_path": "json.db",
		"log_level":     "warn",
	})
	t.Setenv(EnvDatabasePath, "env.db")
	t.Setenv(EnvLogLevel, "error")

	os.Args = []string{"guidipper", "-c", path, "-l", "debug"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	want := defaults()
	want.APIURL = "http://json:1"
	want.DatabasePath = "env.db"
	want.LogLevel = "debug"
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_BadJSONFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"guidipper", "-config", filepath.Join(t.TempDir(), "missing.json")}
	_, err := LoadConfig()
	require.Error(t, err)
}
