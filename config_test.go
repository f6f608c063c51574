package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"ADDR", "LOG_LEVEL", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME",
	"DB_USER", "DB_PASSWORD", "DB_SSL", "DB_PATH", "DB_MAX_CONNS",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "site")
	t.Setenv("DB_USER", "reader")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_SSL", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.WatchInterval)
	assert.Equal(t, DatabaseConfig{
		Driver:   DriverPostgres,
		Host:     "db.internal",
		Port:     6543,
		Name:     "site",
		User:     "reader",
		Password: "pw",
		SSL:      true,
		MaxConns: 10,
	}, cfg.Database)
}

func TestLoadConfigSSLOnlyForExactTrue(t *testing.T) {
	for _, v := range []string{"TRUE", "1", "yes", ""} {
		t.Run(v, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv("DB_HOST", "h")
			t.Setenv("DB_NAME", "n")
			t.Setenv("DB_SSL", v)

			cfg, err := LoadConfig("")
			require.NoError(t, err)
			assert.False(t, cfg.Database.SSL)
		})
	}
}

func TestLoadConfigYAMLWithEnvOverride(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":8080"
log_level: debug
watch_interval: 30s
database:
  host: from-file
  name: site
  ssl: true
  max_conns: 3
`), 0o644))
	t.Setenv("DB_HOST", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.WatchInterval)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.True(t, cfg.Database.SSL)
	assert.Equal(t, int32(3), cfg.Database.MaxConns)
}

func TestLoadConfigSQLite(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "data/folio.db")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/folio.db", cfg.Database.Path)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing host", map[string]string{"DB_NAME": "n"}},
		{"missing name", map[string]string{"DB_HOST": "h"}},
		{"bad port", map[string]string{"DB_HOST": "h", "DB_NAME": "n", "DB_PORT": "abc"}},
		{"port out of range", map[string]string{"DB_HOST": "h", "DB_NAME": "n", "DB_PORT": "70000"}},
		{"bad log level", map[string]string{"DB_HOST": "h", "DB_NAME": "n", "LOG_LEVEL": "loud"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"sqlite without path", map[string]string{"DB_DRIVER": "sqlite"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearConfigEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
