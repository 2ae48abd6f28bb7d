package cli

import (
	"context"
	"fmt"

	"task-list/internal/api"
	"task-list/internal/errors"
	"task-list/internal/services"
)

// ServeCommand runs the HTTP API
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute opens the store and serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "serve", "usage: tl serve")
	}

	cfg := c.app.Config()
	logger := c.app.Logger()

	repo, err := c.app.openRepo(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}
	defer repo.Close()

	validator := cfg.TaskValidator()
	container := services.NewServiceContainer(repo,
		services.WithLogger(logger),
		services.WithValidator(validator),
	)

	server := api.NewServer(container.TaskService, api.Options{
		AllowedOrigin:   cfg.Server.AllowedOrigin,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Validator:       validator,
	}, logger)

	logger.Info("starting task API", "driver", cfg.Database.Driver, "origin", cfg.Server.AllowedOrigin)
	return server.Run(ctx, cfg.Server.Addr)
}
