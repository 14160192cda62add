package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is returned when the configuration file fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the application configuration loaded from config.toml.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	Catalog CatalogConfig `toml:"catalog"`
	Mirror  MirrorConfig  `toml:"mirror"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig holds logger settings.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig holds prometheus exposition settings.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// CatalogConfig points at the resource catalog file.
type CatalogConfig struct {
	File string `toml:"file"`
}

// MirrorConfig holds the optional best-effort Postgres mirror settings.
// The mirror is a collaborator: its availability never affects booking commits.
type MirrorConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
	WriteTimeout    int    `toml:"write_timeout"`     // seconds, per mirror write
}

// DSN builds the Postgres connection string for the mirror.
func (m *MirrorConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		m.Host, m.Port, m.User, m.Password, m.DBName, m.SSLMode)
}

// Load reads and validates the configuration file, applying defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 5000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "bookathing"
	}
	if c.Catalog.File == "" {
		c.Catalog.File = "resources.toml"
	}
	if c.Mirror.SSLMode == "" {
		c.Mirror.SSLMode = "disable"
	}
	if c.Mirror.MaxOpenConns == 0 {
		c.Mirror.MaxOpenConns = 5
	}
	if c.Mirror.MaxIdleConns == 0 {
		c.Mirror.MaxIdleConns = 2
	}
	if c.Mirror.ConnMaxLifetime == 0 {
		c.Mirror.ConnMaxLifetime = 300
	}
	if c.Mirror.WriteTimeout == 0 {
		c.Mirror.WriteTimeout = 5
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Mirror.Enabled {
		if c.Mirror.Host == "" {
			return fmt.Errorf("%w: mirror.host is required when mirror is enabled", ErrInvalidConfig)
		}
		if c.Mirror.DBName == "" {
			return fmt.Errorf("%w: mirror.dbname is required when mirror is enabled", ErrInvalidConfig)
		}
	}
	return nil
}
