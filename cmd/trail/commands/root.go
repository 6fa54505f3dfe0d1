// Package commands implements the CLI commands for trail.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/trail/internal/adapters/config"
	"go.trai.ch/trail/internal/app"
	"go.trai.ch/trail/internal/build"
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for trail.
type CLI struct {
	app     Application
	logs    LogSettings
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	LoadWorkspace(path string) (*domain.Workspace, error)
	Run(ctx context.Context, ws *domain.Workspace, names []string, opts app.RunOptions) ([]domain.Result, error)
	Watch(
		ctx context.Context,
		ws *domain.Workspace,
		names []string,
		opts app.RunOptions,
		report func([]domain.Result),
	) error
	Close() error
}

// LogSettings is the part of the logger the global flags adjust.
type LogSettings interface {
	SetJSON(enable bool)
	SetLevel(level domain.LogLevel)
}

// Option configures a CLI.
type Option func(*CLI)

// WithLogSettings lets the --log-format and --verbose flags reconfigure the logger.
func WithLogSettings(s LogSettings) Option {
	return func(c *CLI) {
		c.logs = s
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "trail",
		Short:         "Count paths through a directed graph, optionally via required waypoints",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFilename, "Path to the workspace file or a directory containing it")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}
	rootCmd.PersistentPreRunE = c.configureLogs

	rootCmd.AddCommand(c.newCountCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configureLogs(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var jsonLogs bool
	switch format {
	case "text":
	case "json":
		jsonLogs = true
	default:
		return zerr.With(zerr.New("unknown log format"), "format", format)
	}

	if c.logs == nil {
		return nil
	}
	c.logs.SetJSON(jsonLogs)
	if verbose {
		c.logs.SetLevel(domain.LogLevelDebug)
	}
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
