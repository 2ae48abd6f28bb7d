package cli

import (
	"context"
	"fmt"
	"strconv"

	"task-list/internal/errors"
)

// CompleteCommand handles the complete command
type CompleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute completes the task with the given id
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "complete", "usage: tl complete <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err == nil {
		err = c.app.Config().TaskValidator().ValidateTaskID(id)
	}
	if err != nil {
		return errors.NewInvalidInputError("id", args[0], "must be a positive integer")
	}

	if err := c.app.API().CompleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("complete task", err)
	}

	fmt.Fprintf(c.app.out, "Completed task #%d\n", id)
	return nil
}
