package cli

import (
	"context"
	"fmt"

	"task-list/internal/errors"
	"task-list/internal/ui"
)

// UICommand starts the interactive terminal client
type UICommand struct {
	app *App
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{app: app}
}

// Execute runs the terminal UI against the configured API
func (c *UICommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "ui", "usage: tl ui")
	}

	logger, closeLog, err := c.app.uiLogger()
	if err != nil {
		return fmt.Errorf("failed to open ui log: %w", err)
	}
	defer closeLog()

	taskAPI := c.app.api
	if taskAPI == nil {
		taskAPI = c.app.newClient(logger)
	}

	return ui.Run(ctx, taskAPI, logger)
}
