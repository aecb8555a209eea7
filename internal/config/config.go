package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration, read from YAML and then overridden by
// environment variables.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server"`
	// Storage selects where execution records are kept.
	Storage StorageConfig `yaml:"storage"`
	// Logging configures the slog handler.
	Logging LoggingConfig `yaml:"logging"`
	// Profiling enables a separate pprof listener.
	Profiling ProfilingConfig `yaml:"profiling"`

	// envErrs holds environment overrides that could not be parsed.
	envErrs []error
}

type ServerConfig struct {
	// Port is the HTTP listen port.
	Port string `yaml:"port"`
	// MaxCommands rejects requests with more commands. Zero disables the check.
	MaxCommands int `yaml:"max_commands"`
	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	// ShutdownTimeout bounds graceful shutdown (e.g. "10s").
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// HistoryLimit is how many recent executions the index page and stream greeting show.
	HistoryLimit int `yaml:"history_limit"`
}

type StorageConfig struct {
	// Driver is "memory" or "postgres".
	Driver   string         `yaml:"driver"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
	// Path is the log file path. Empty logs to stdout.
	Path string `yaml:"path"`
}

type ProfilingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "5000",
			MaxBodyBytes:    16 << 20,
			ShutdownTimeout: "10s",
			HistoryLimit:    20,
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
			Postgres: PostgresConfig{
				Host:    "postgres",
				Port:    "5432",
				SSLMode: "disable",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Profiling: ProfilingConfig{
			Port: "42069",
		},
	}
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is os.LookupEnv
// outside of tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("APP_PORT", &c.Server.Port)
	set("STORAGE_DRIVER", &c.Storage.Driver)
	set("POSTGRES_HOST", &c.Storage.Postgres.Host)
	set("POSTGRES_PORT", &c.Storage.Postgres.Port)
	set("POSTGRES_USER", &c.Storage.Postgres.User)
	set("POSTGRES_PASSWORD", &c.Storage.Postgres.Password)
	set("POSTGRES_DB", &c.Storage.Postgres.Database)
	set("LOG_LEVEL", &c.Logging.Level)
	set("LOG_FORMAT", &c.Logging.Format)
	set("PPROF_PORT", &c.Profiling.Port)

	if v, ok := lookup("MAX_COMMANDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.envErrs = append(c.envErrs, fmt.Errorf("MAX_COMMANDS %q is not a number", v))
		} else {
			c.Server.MaxCommands = n
		}
	}
	if v, ok := lookup("ENABLE_PROFILING"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			c.envErrs = append(c.envErrs, fmt.Errorf("ENABLE_PROFILING %q is not a boolean", v))
		} else {
			c.Profiling.Enabled = enabled
		}
	}
}

func (c Config) Validate() error {
	errs := append([]error(nil), c.envErrs...)
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		errs = append(errs, fmt.Errorf("server.port %q is not a number", c.Server.Port))
	}
	if c.Server.MaxCommands < 0 {
		errs = append(errs, fmt.Errorf("server.max_commands must not be negative"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be positive"))
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout: %w", err))
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.Postgres.Host == "" || c.Storage.Postgres.Database == "" {
			errs = append(errs, fmt.Errorf("storage.postgres requires host and database"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not supported", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func (c ServerConfig) ShutdownDuration() time.Duration {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// DSN builds a postgres connection URL.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {p.SSLMode}}.Encode()
	}
	return u.String()
}
