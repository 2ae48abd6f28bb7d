package cli

import (
	"context"
	"fmt"
	"strings"

	"task-list/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute creates a task from the joined arguments. The title is checked
// locally first so a bad title is not sent, and retried, at all.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: tl add \"your task here\"")
	}

	title, err := c.app.Config().TaskValidator().GetValidTitle(strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	task, err := c.app.API().CreateTask(ctx, title)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task #%d: %s\n", task.ID, task.Title)
	return nil
}
