package config

import (
	"context"
	"fmt"

	"task-api/internal/repository/sqldb"
)

// RepositoryOptions returns the pool settings derived from the configuration.
func (c *Config) RepositoryOptions() sqldb.Options {
	return sqldb.Options{
		MaxConnections: c.Database.MaxConnections,
		QueryTimeout:   c.GetQueryTimeout(),
	}
}

// CreateRepository opens the configured database and applies pending migrations
func CreateRepository(ctx context.Context, config *Config) (*sqldb.SQLRepository, error) {
	repo, err := sqldb.NewWithOptions(ctx, config.Database.URL, config.RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// OpenRepository opens the configured database without migrating it
func OpenRepository(ctx context.Context, config *Config) (*sqldb.SQLRepository, error) {
	repo, err := sqldb.Open(ctx, config.Database.URL, config.RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return repo, nil
}
