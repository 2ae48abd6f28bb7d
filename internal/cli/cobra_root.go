package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"task-list/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	app     *App
	appOpts []AppOption
}

// NewRootCommand creates the root cobra command with global flags. The
// configuration is loaded once flags are parsed, right before a subcommand
// runs.
func NewRootCommand(opts ...AppOption) *RootCommand {
	root := &RootCommand{
		appOpts: opts,
	}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A minimal task list with an HTTP API and a terminal client",
		Long: `Task List (tl) keeps an ordered list of tasks. Tasks are appended to the
end of the list and disappear once completed.

EXAMPLES:
  tl serve                                 # Start the HTTP API on :3001
  tl ui                                    # Open the interactive terminal client
  tl add "Buy milk"                        # Append a task
  tl list                                  # Show every task in order
  tl complete 12                           # Complete task #12

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file:
    TL_CONFIG                              Path to a YAML, TOML or JSON file

  Database Configuration:
    TL_DB_DRIVER                           sqlite, sqlite3 or postgres (default: sqlite)
    TL_DB_DIR                              Database directory (default: ~/.tl)
    TL_DB_FILENAME                         Database filename (default: tl.db)
    TL_DB_DSN                              Postgres connection string
    TL_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    TL_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)

  Server Configuration:
    TL_SERVER_ADDR                         Listen address (default: :3001)
    TL_FRONTEND_URL                        Allowed CORS origin (default: http://localhost:3000)

  Client Configuration:
    TL_API_URL                             API base URL (default: http://localhost:3001)
    TL_CLIENT_MAX_ATTEMPTS                 Attempts per request (default: 3)
    TL_CLIENT_RETRY_DELAY                  Base retry delay (default: 1s)

  Validation Configuration:
    TL_VALIDATION_TITLE_MIN                Min title length (default: 1)
    TL_VALIDATION_TITLE_MAX                Max title length (default: 500)

  Application Configuration:
    TL_APP_TIMEOUT                         Timeout for one-shot commands (default: 60s)
    TL_APP_VERBOSE                         Enable verbose output (default: false)
    TL_LOG_FORMAT                          text, json or logfmt (default: text)

GETTING HELP:
  tl [command] --help                      # Get help for any specific command
  tl completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd.Flags())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// App returns the application built for the last run, or nil before a
// subcommand has run
func (r *RootCommand) App() *App {
	return r.app
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TL_CONFIG)")

	// Database configuration
	flags.String("db-driver", "", "Database driver: sqlite, sqlite3 or postgres (overrides TL_DB_DRIVER)")
	flags.String("db-dir", "", "Database directory (overrides TL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TL_DB_FILENAME)")
	flags.String("db-dsn", "", "Postgres connection string (overrides TL_DB_DSN)")

	// Server configuration
	flags.String("addr", "", "Listen address for serve (overrides TL_SERVER_ADDR)")

	// Client configuration
	flags.String("api-url", "", "API base URL (overrides TL_API_URL)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Timeout for one-shot commands (overrides TL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TL_APP_VERBOSE)")
	flags.String("log-format", "", "Log format: text, json or logfmt (overrides TL_LOG_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API that stores tasks.

Routes:
  GET   /tasks                 List tasks in position order
  POST  /tasks                 Create a task from {"title": "..."}
  PATCH /tasks/{id}/complete   Complete (remove) a task

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return r.app.registry.Execute(ctx, "serve", args)
		},
	}

	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal client",
		Long: `Open the interactive terminal client.

New tasks and completions show up immediately and are rolled back if the
server rejects them. Press ctrl+c to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			return r.app.registry.Execute(ctx, "ui", args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List every task in position order together with its id.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return r.app.registry.Execute(ctx, "list", args)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task to the end of the list",
		Long: `Add a task to the end of the list. All arguments are joined into the title.

Examples:
  tl add Buy milk
  tl add "Call the plumber"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return r.app.registry.Execute(ctx, "add", args)
		},
	}

	completeCmd := &cobra.Command{
		Use:   "complete [id]",
		Short: "Complete a task",
		Long:  "Complete the task with the given id. Use tl list to find ids.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return r.app.registry.Execute(ctx, "complete", args)
		},
	}

	r.cmd.AddCommand(
		serveCmd,
		uiCmd,
		listCmd,
		addCmd,
		completeCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app != nil && r.app.config != nil {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}

// loadConfig loads the configuration, applies flag overrides and builds the
// application for the subcommand about to run
func (r *RootCommand) loadConfig(flags *pflag.FlagSet) error {
	loader := config.NewLoader()
	if path, _ := flags.GetString("config"); path != "" {
		loader.WithConfigFile(path)
	}

	cfg, err := loader.LoadWithOverrides(getOverridesFromFlags(flags))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	r.app = NewApp(cfg, r.appOpts...)
	return nil
}

// getOverridesFromFlags collects the flags that were set explicitly
func getOverridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	overrides.DBDriver = stringFlag("db-driver")
	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBDSN = stringFlag("db-dsn")
	overrides.ServerAddr = stringFlag("addr")
	overrides.APIURL = stringFlag("api-url")
	overrides.LogFormat = stringFlag("log-format")

	if flags.Changed("app-timeout") {
		timeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &timeout
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	return overrides
}
