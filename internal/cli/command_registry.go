package cli

import (
	"context"
	"sort"
	"strings"

	"task-list/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("serve", NewServeCommand(app))
	registry.Register("ui", NewUICommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("add", NewAddCommand(app))
	registry.Register("complete", NewCompleteCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Lookup returns the command registered under name
func (r *CommandRegistry) Lookup(name string) (Command, bool) {
	command, exists := r.commands[name]
	return command, exists
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in sorted order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UsageError returns the error shown when no command is given
func (r *CommandRegistry) UsageError() error {
	return errors.NewInvalidInputError("command", "", "usage: tl <"+strings.Join(r.Names(), "|")+"> [args]")
}
