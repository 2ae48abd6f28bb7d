package cli

import (
	"context"
	"fmt"

	"task-list/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints every task in position order, one per line:
// "  1. Buy milk (#12)"
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "list", "usage: tl list")
	}

	tasks, err := c.app.API().ListTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks yet")
		return nil
	}

	for i, task := range tasks {
		fmt.Fprintf(c.app.out, "%3d. %s (#%d)\n", i+1, task.Title, task.ID)
	}
	return nil
}
