package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for on-disk sources. Every field is optional so
// that only the keys present in the file override the defaults.
type fileConfig struct {
	Server struct {
		Address             *string `toml:"address" yaml:"address"`
		ReadHeaderTimeout   *string `toml:"read_header_timeout" yaml:"read_header_timeout"`
		ShutdownTimeout     *string `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
		ExposeStorageErrors *bool   `toml:"expose_storage_errors" yaml:"expose_storage_errors"`
	} `toml:"server" yaml:"server"`
	Database struct {
		URL            *string `toml:"url" yaml:"url"`
		MaxConnections *int    `toml:"max_connections" yaml:"max_connections"`
		QueryTimeout   *string `toml:"query_timeout" yaml:"query_timeout"`
	} `toml:"database" yaml:"database"`
	Logging struct {
		Level  *string `toml:"level" yaml:"level"`
		Format *string `toml:"format" yaml:"format"`
	} `toml:"logging" yaml:"logging"`
}

// LoadFile applies the settings found in a TOML or YAML file. The format is
// chosen by extension: .yaml and .yml are YAML, everything else is TOML.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return c.applyFile(&raw)
}

func (c *Config) applyFile(raw *fileConfig) error {
	if raw.Server.Address != nil {
		c.Server.Address = *raw.Server.Address
	}
	if err := setDuration(&c.Server.ReadHeaderTimeout, raw.Server.ReadHeaderTimeout, "server.read_header_timeout"); err != nil {
		return err
	}
	if err := setDuration(&c.Server.ShutdownTimeout, raw.Server.ShutdownTimeout, "server.shutdown_timeout"); err != nil {
		return err
	}
	if raw.Server.ExposeStorageErrors != nil {
		c.Server.ExposeStorageErrors = *raw.Server.ExposeStorageErrors
	}

	if raw.Database.URL != nil {
		c.Database.URL = *raw.Database.URL
	}
	if raw.Database.MaxConnections != nil {
		c.Database.MaxConnections = *raw.Database.MaxConnections
	}
	if err := setDuration(&c.Database.QueryTimeout, raw.Database.QueryTimeout, "database.query_timeout"); err != nil {
		return err
	}

	if raw.Logging.Level != nil {
		c.Logging.Level = strings.ToLower(*raw.Logging.Level)
	}
	if raw.Logging.Format != nil {
		c.Logging.Format = strings.ToLower(*raw.Logging.Format)
	}

	return nil
}

func setDuration(dst *time.Duration, value *string, field string) error {
	if value == nil {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return &ConfigError{Field: field, Message: err.Error()}
	}
	*dst = d
	return nil
}
