package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ConfigFileEnv names the environment variable that points at a config file.
const ConfigFileEnv = "TASKAPI_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
	envFile    string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: ".env",
	}
}

// WithConfigFile sets the TOML or YAML file read before the environment.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvFile sets the dotenv file. An empty path disables dotenv loading.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file, if any
// 3. Populate the process environment from .env without replacing set variables
// 4. Override with environment variables
// 5. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	path := l.configPath
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		if err := l.config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Server overrides
	Address             *string
	ExposeStorageErrors *bool

	// Database overrides
	DatabaseURL    *string
	MaxConnections *int
	QueryTimeout   *time.Duration

	// Logging overrides
	LogLevel  *string
	LogFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Address != nil {
		config.Server.Address = *overrides.Address
	}
	if overrides.ExposeStorageErrors != nil {
		config.Server.ExposeStorageErrors = *overrides.ExposeStorageErrors
	}

	if overrides.DatabaseURL != nil {
		config.Database.URL = *overrides.DatabaseURL
	}
	if overrides.MaxConnections != nil {
		config.Database.MaxConnections = *overrides.MaxConnections
	}
	if overrides.QueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.QueryTimeout
	}

	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Logging.Format = *overrides.LogFormat
	}
}
