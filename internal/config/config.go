package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the task service
type Config struct {
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Database DatabaseConfig `toml:"database" yaml:"database"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Address             string        `env:"SERVER_ADDRESS"`
	ReadHeaderTimeout   time.Duration `env:"TASKAPI_READ_HEADER_TIMEOUT"`
	ShutdownTimeout     time.Duration `env:"TASKAPI_SHUTDOWN_TIMEOUT"`
	ExposeStorageErrors bool          `env:"TASKAPI_EXPOSE_STORAGE_ERRORS"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL            string        `env:"DATABASE_URL"`
	MaxConnections int           `env:"TASKAPI_DB_MAX_CONNECTIONS"`
	QueryTimeout   time.Duration `env:"TASKAPI_DB_QUERY_TIMEOUT"`
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	Level  string `env:"TASKAPI_LOG_LEVEL"`
	Format string `env:"TASKAPI_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:             "127.0.0.1:3000",
			ReadHeaderTimeout:   10 * time.Second,
			ShutdownTimeout:     15 * time.Second,
			ExposeStorageErrors: true,
		},
		Database: DatabaseConfig{
			URL:            "sqlite://tasks.db",
			MaxConnections: 16,
			QueryTimeout:   0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		c.Server.Address = addr
	}
	if timeout := os.Getenv("TASKAPI_READ_HEADER_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return &ConfigError{Field: "TASKAPI_READ_HEADER_TIMEOUT", Message: err.Error()}
		}
		c.Server.ReadHeaderTimeout = d
	}
	if timeout := os.Getenv("TASKAPI_SHUTDOWN_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return &ConfigError{Field: "TASKAPI_SHUTDOWN_TIMEOUT", Message: err.Error()}
		}
		c.Server.ShutdownTimeout = d
	}
	if expose := os.Getenv("TASKAPI_EXPOSE_STORAGE_ERRORS"); expose != "" {
		b, err := strconv.ParseBool(expose)
		if err != nil {
			return &ConfigError{Field: "TASKAPI_EXPOSE_STORAGE_ERRORS", Message: err.Error()}
		}
		c.Server.ExposeStorageErrors = b
	}

	// Database configuration
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Database.URL = url
	}
	if maxConns := os.Getenv("TASKAPI_DB_MAX_CONNECTIONS"); maxConns != "" {
		n, err := strconv.Atoi(maxConns)
		if err != nil {
			return &ConfigError{Field: "TASKAPI_DB_MAX_CONNECTIONS", Message: err.Error()}
		}
		c.Database.MaxConnections = n
	}
	if timeout := os.Getenv("TASKAPI_DB_QUERY_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return &ConfigError{Field: "TASKAPI_DB_QUERY_TIMEOUT", Message: err.Error()}
		}
		c.Database.QueryTimeout = d
	}

	// Logging configuration
	if level := os.Getenv("TASKAPI_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("TASKAPI_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.Address == "" {
		return &ConfigError{Field: "server.address", Message: "listen address cannot be empty"}
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		return &ConfigError{Field: "server.read_header_timeout", Message: "read header timeout must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate database configuration
	if c.Database.URL == "" {
		return &ConfigError{Field: "database.url", Message: "database url cannot be empty"}
	}
	if c.Database.MaxConnections < 1 {
		return &ConfigError{Field: "database.max_connections", Message: "max connections must be at least 1"}
	}
	if c.Database.QueryTimeout < 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout cannot be negative"}
	}

	// Validate logging configuration
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be one of debug, info, warn, error"}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "format must be text or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
