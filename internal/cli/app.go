package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"task-list/internal/client"
	"task-list/internal/config"
	"task-list/internal/logging"
	"task-list/internal/repository"
	"task-list/internal/tasklist"
)

// RepositoryOpener opens the task store described by the configuration
type RepositoryOpener func(ctx context.Context, cfg *config.Config) (repository.Repository, error)

// App represents the main CLI application. Collaborators that are not
// injected are built from the configuration on first use, so flag overrides
// applied before a command runs are honoured.
type App struct {
	config   *config.Config
	out      io.Writer
	logger   *log.Logger
	api      tasklist.API
	openRepo RepositoryOpener
	registry *CommandRegistry
}

// AppOption configures an App
type AppOption func(*App)

// WithAPI replaces the HTTP client used by the list, add, complete and ui
// commands
func WithAPI(api tasklist.API) AppOption {
	return func(a *App) {
		a.api = api
	}
}

// WithOutput sets where command output is written
func WithOutput(w io.Writer) AppOption {
	return func(a *App) {
		a.out = w
	}
}

// WithAppLogger sets the logger instead of building one from the configuration
func WithAppLogger(logger *log.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithRepositoryOpener replaces how the serve command opens its store
func WithRepositoryOpener(open RepositoryOpener) AppOption {
	return func(a *App) {
		a.openRepo = open
	}
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config:   cfg,
		out:      os.Stdout,
		openRepo: config.CreateRepository,
	}
	for _, opt := range opts {
		opt(app)
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Config returns the configuration the commands run with
func (a *App) Config() *config.Config {
	return a.config
}

// Run executes the named command with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.registry.UsageError()
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// Logger returns the application logger
func (a *App) Logger() *log.Logger {
	if a.logger == nil {
		a.logger = logging.NewFromSettings(os.Stderr, a.config.Application.Verbose, a.config.Application.LogFormat)
	}
	return a.logger
}

// API returns the task API client
func (a *App) API() tasklist.API {
	if a.api == nil {
		a.api = a.newClient(a.Logger())
	}
	return a.api
}

func (a *App) newClient(logger *log.Logger) *client.Client {
	cfg := a.config.Client
	return client.New(cfg.BaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRetrier(client.NewRetrier(cfg.MaxAttempts, cfg.RetryBaseDelay)),
		client.WithLogger(logger),
	)
}

// uiLogger returns a logger that does not write to the terminal. The
// full-screen UI owns the terminal, so logs go to ui.log next to the
// database, or nowhere when there is no database directory.
func (a *App) uiLogger() (*log.Logger, func(), error) {
	if a.logger != nil {
		return a.logger, func() {}, nil
	}

	dir := a.config.Database.Dir
	if dir == "" {
		return logging.Discard(), func() {}, nil
	}
	if err := os.MkdirAll(dir, os.FileMode(a.config.Database.DirPermissions)); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "ui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewFromSettings(f, a.config.Application.Verbose, a.config.Application.LogFormat)
	return logger, func() { f.Close() }, nil
}
