package folio

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Supported values for DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the service.
type Config struct {
	Addr     string         `yaml:"addr"`      // Listen address (default ":3000")
	LogLevel string         `yaml:"log_level"` // debug, info, warn, error (default "info")
	Database DatabaseConfig `yaml:"database"`

	// WatchInterval is how often the pool watchdog pings the database.
	WatchInterval time.Duration `yaml:"watch_interval"`
}

// DatabaseConfig describes how to reach the database.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "postgres" (default) or "sqlite"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSL      bool   `yaml:"ssl"`       // TLS without peer verification
	MaxConns int32  `yaml:"max_conns"` // pool bound (default 10)
	Path     string `yaml:"path"`      // SQLite file, sqlite driver only
}

// LoadConfig reads an optional YAML file, applies environment overrides and
// defaults, and validates the result. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("ADDR", &c.Addr)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("DB_DRIVER", &c.Database.Driver)
	setString("DB_HOST", &c.Database.Host)
	setString("DB_NAME", &c.Database.Name)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_PATH", &c.Database.Path)

	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("DB_MAX_CONNS: %w", err)
		}
		c.Database.MaxConns = int32(n)
	}
	// Only the exact string "true" turns TLS on.
	if v, ok := os.LookupEnv("DB_SSL"); ok {
		c.Database.SSL = v == "true"
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.WatchInterval == 0 {
		c.WatchInterval = 15 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 10
	}
}

func (c *Config) validate() error {
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	db := c.Database
	switch db.Driver {
	case DriverPostgres:
		if db.Host == "" {
			return errors.New("database host is required")
		}
		if db.Name == "" {
			return errors.New("database name is required")
		}
		if db.Port < 1 || db.Port > 65535 {
			return fmt.Errorf("database port %d out of range", db.Port)
		}
		if db.MaxConns < 1 {
			return fmt.Errorf("max_conns must be positive, got %d", db.MaxConns)
		}
	case DriverSQLite:
		if db.Path == "" {
			return errors.New("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("unknown database driver %q", db.Driver)
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithClock overrides the time source used for lastBuildDate and the sitemap
// root entry.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
