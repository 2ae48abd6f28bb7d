package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"task-list/internal/config"
	"task-list/internal/repository"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository(ctx, cfg)
	case Testing:
		return rf.createTestingRepository()
	default:
		return config.CreateRepository(ctx, cfg)
	}
}

// createDevelopmentRepository keeps SQLite data in the working directory.
// An explicit postgres configuration is left untouched.
func (rf *RepositoryFactory) createDevelopmentRepository(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	if cfg.Database.Driver == config.DriverPostgres {
		return config.CreateRepository(ctx, cfg)
	}

	local := *cfg
	local.Database.Dir = "."
	local.Database.Filename = "tl.db"

	repo, err := config.CreateRepository(ctx, &local)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// createTestingRepository uses an in-memory SQLite database
func (rf *RepositoryFactory) createTestingRepository() (repository.Repository, error) {
	repo, err := config.CreateTestRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing database: %w", err)
	}
	return repo, nil
}

// ginMode maps the environment to the HTTP framework's mode
func (e Environment) ginMode() string {
	switch e {
	case Development:
		return gin.DebugMode
	case Testing:
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("TL_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		// Default to production for safety
		return Production
	}
}
