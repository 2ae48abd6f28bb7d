package config

import (
	"context"
	"fmt"
	"os"

	"task-list/internal/repository"
	"task-list/internal/repository/postgres"
	"task-list/internal/repository/sqlite"
	"task-list/internal/validation"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	if config.Database.Driver == DriverPostgres {
		repo, err := postgres.New(ctx, config.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}

	if !config.IsInMemory() {
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{
		Driver:       config.Database.Driver,
		QueryTimeout: config.GetQueryTimeout(),
		WriteTimeout: config.GetWriteTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.Repository, error) {
	repo, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}

// TaskValidator builds a title validator from the configured limits
func (c *Config) TaskValidator() *validation.TaskValidator {
	return validation.NewTaskValidatorWithLimits(c.Validation.TitleMinLength, c.Validation.TitleMaxLength)
}
