package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.False(t, cfg.Database.Configured())
	assert.False(t, cfg.Schedule.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GNEWS_API_KEY", "gk")
	t.Setenv("DATABASE_DSN", "postgres://rw")
	t.Setenv("CRON_SECRET", "s3cret")
	t.Setenv("SCHEDULE_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, "gk", cfg.Providers.GNewsAPIKey)
	assert.Equal(t, "postgres://rw", cfg.Database.DSN)
	assert.Equal(t, "s3cret", cfg.Cron.Secret)
	assert.True(t, cfg.Schedule.Enabled)
}

func TestLoadYAMLFileWithEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte("port: \"9090\"\ngemini:\n  model: from-file\ndatabase:\n  readOnlyDsn: postgres://ro\n")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	t.Setenv("HAPPYNEWS_CONFIG", path)
	t.Setenv("GEMINI_MODEL", "from-env")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	// env wins over file
	assert.Equal(t, "from-env", cfg.Gemini.Model)
	assert.True(t, cfg.Database.Configured())
	assert.Equal(t, "postgres://ro", cfg.Database.Effective())
}

func TestEffectivePrefersElevatedDSN(t *testing.T) {
	d := DatabaseConfig{DSN: "postgres://rw", ReadOnlyDSN: "postgres://ro"}
	assert.Equal(t, "postgres://rw", d.Effective())
}
