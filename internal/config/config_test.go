package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "bookathing", cfg.Metrics.ServiceName)
	assert.Equal(t, "resources.toml", cfg.Catalog.File)
	assert.False(t, cfg.Mirror.Enabled)
	assert.Equal(t, "disable", cfg.Mirror.SSLMode)
	assert.Equal(t, 5, cfg.Mirror.WriteTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `
[server]
http_port = 8080
read_timeout = 30

[logs]
file = "logs/app.log"
level = "debug"

[catalog]
file = "my-resources.toml"

[mirror]
enabled = true
host = "db.internal"
port = 5432
user = "bookathing"
password = "secret"
dbname = "bookings"
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "my-resources.toml", cfg.Catalog.File)
	assert.True(t, cfg.Mirror.Enabled)
	assert.Equal(t,
		"host=db.internal port=5432 user=bookathing password=secret dbname=bookings sslmode=disable",
		cfg.Mirror.DSN())
}

func TestLoad_InvalidPort(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
[server]
http_port = 70000
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MirrorRequiresHostAndDB(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
[mirror]
enabled = true
dbname = "bookings"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfigFile(t, `
[mirror]
enabled = true
host = "db.internal"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
