package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/odyssey/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("ODYSSEY_ENV", "local")
	t.Setenv("ODYSSEY_PROVIDER_KEY", "testAPIKey")
	t.Setenv("ODYSSEY_MAX_STOPS", "12")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, 12, cfg.MaxStops)
	assert.Equal(t, 50, cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "google", cfg.ProviderType)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)
	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "odyssey.yaml")
	filet.File(t, path, `
env: development
provider:
  type: nominatim
  language: uk
geocoder:
  workers: 4
  address_prefix: "Ukraine, "
cache:
  ttl: 1h
`)
	t.Setenv("ODYSSEY_CONFIG_FILE", path)
	t.Setenv("ODYSSEY_WORKERS", "6")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "nominatim", cfg.ProviderType)
	assert.Equal(t, "uk", cfg.Language)
	assert.Equal(t, 6, cfg.Workers, "environment overrides the file")
	assert.Equal(t, "Ukraine, ", cfg.AddrPrefix)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 16, cfg.MaxStops)
	assert.False(t, cfg.Database.Enabled())
}

func TestMustLoad_MissingFile(t *testing.T) {
	t.Setenv("ODYSSEY_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.PanicsWithValue(t, "failed to read configuration file", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		env     string
		message string
	}{
		{"ODYSSEY_PORT", "failed to parse port for http server from configuration"},
		{"ODYSSEY_WORKERS", "failed to parse workers from configuration, must be an integer types"},
		{"ODYSSEY_RATE_LIMIT", "failed to parse rate limit from configuration, must be an integer types"},
		{"ODYSSEY_MAX_STOPS", "failed to parse max stops from configuration, must be an integer types"},
		{"ODYSSEY_GEOCODE_TIMEOUT", "failed to parse geocode timeout from configuration"},
		{"ODYSSEY_CACHE_TTL", "failed to parse cache ttl from configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, "error_value")

			assert.PanicsWithValue(t, tt.message, func() {
				config.MustLoad()
			})
		})
	}
}
