package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"task-api/internal/config"
	"task-api/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd          *cobra.Command
	config       *config.Config
	logger       *slog.Logger
	errorHandler *ErrorHandler
	stdout       io.Writer
	stderr       io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(stdout, stderr io.Writer) *RootCommand {
	root := &RootCommand{
		logger:       logging.Discard(),
		errorHandler: NewErrorHandler(),
		stdout:       stdout,
		stderr:       stderr,
	}

	root.cmd = &cobra.Command{
		Use:   "taskd",
		Short: "An HTTP service for creating, listing, updating and deleting tasks",
		Long: `taskd serves a JSON API over a single tasks table.

ENDPOINTS:
  GET    /                   Hello World
  GET    /tasks              List all tasks ordered by id
  POST   /tasks              Create a task: {"name": "...", "priority": 1}
  PATCH  /tasks/{task_id}    Overwrite name and priority of a task
  DELETE /tasks/{task_id}    Delete a task

EXAMPLES:
  taskd                                            # Serve on 127.0.0.1:3000 using ./tasks.db
  taskd serve --address 0.0.0.0:8080               # Serve on another address
  taskd --database-url postgres://u:p@host/tasks   # Serve from PostgreSQL
  taskd migrate                                    # Apply pending migrations
  taskd migrate down                               # Roll back the latest migration

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env file > config file > defaults

    TASKAPI_CONFIG                 TOML or YAML config file
    SERVER_ADDRESS                 Listen address (default: 127.0.0.1:3000)
    TASKAPI_READ_HEADER_TIMEOUT    Read header timeout (default: 10s)
    TASKAPI_SHUTDOWN_TIMEOUT       Graceful shutdown timeout (default: 15s)
    TASKAPI_EXPOSE_STORAGE_ERRORS  Send raw storage errors to clients (default: true)
    DATABASE_URL                   sqlite://path, sqlite://:memory: or postgres://... (default: sqlite://tasks.db)
    TASKAPI_DB_MAX_CONNECTIONS     Connection pool size (default: 16)
    TASKAPI_DB_QUERY_TIMEOUT       Per-statement timeout, 0 for none (default: 0)
    TASKAPI_LOG_LEVEL              debug, info, warn or error (default: info)
    TASKAPI_LOG_FORMAT             text or json (default: text)
    TASKAPI_DEBUG                  Force debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runServe(cmd, args)
		},
	}
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.cmd.AddCommand(
		root.newServeCommand(),
		root.newMigrateCommand(),
	)

	return root
}

// ExecuteContext runs the root command with ctx available to every subcommand
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs sets the arguments parsed by ExecuteContext
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "TOML or YAML config file (overrides TASKAPI_CONFIG)")
	flags.String("env-file", ".env", "dotenv file loaded before the environment; empty disables it")

	// Server configuration
	flags.String("address", "", "Listen address (overrides SERVER_ADDRESS)")
	flags.Bool("expose-storage-errors", true, "Send raw storage errors to clients (overrides TASKAPI_EXPOSE_STORAGE_ERRORS)")

	// Database configuration
	flags.String("database-url", "", "Database URL (overrides DATABASE_URL)")
	flags.Int("max-connections", 0, "Connection pool size (overrides TASKAPI_DB_MAX_CONNECTIONS)")
	flags.Duration("query-timeout", 0, "Per-statement timeout (overrides TASKAPI_DB_QUERY_TIMEOUT)")

	// Logging configuration
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides TASKAPI_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (overrides TASKAPI_LOG_FORMAT)")
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("address") {
		v, _ := flags.GetString("address")
		overrides.Address = &v
	}
	if flags.Changed("expose-storage-errors") {
		v, _ := flags.GetBool("expose-storage-errors")
		overrides.ExposeStorageErrors = &v
	}
	if flags.Changed("database-url") {
		v, _ := flags.GetString("database-url")
		overrides.DatabaseURL = &v
	}
	if flags.Changed("max-connections") {
		v, _ := flags.GetInt("max-connections")
		overrides.MaxConnections = &v
	}
	if flags.Changed("query-timeout") {
		v, _ := flags.GetDuration("query-timeout")
		overrides.QueryTimeout = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}

	return overrides
}

// loadConfig resolves the configuration cascade and builds the logger
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()
	configPath, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")

	loader := config.NewLoader().WithConfigFile(configPath).WithEnvFile(envFile)
	cfg, err := loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return r.errorHandler.Handle("load configuration", err)
	}

	r.config = cfg
	r.logger = logging.New(r.stderr, cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

func (r *RootCommand) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.stdout, format, args...)
}
