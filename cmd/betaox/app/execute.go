package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Execute runs the betaox CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	// Subcommand flag defaults come from the config, so an explicit
	// --config is loaded before the command tree is built.
	if path := configFlag(args); path != "" && path != a.config.ConfigFile {
		config, err := LoadConfigFile(path)
		if err != nil {
			return err
		}
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
	}

	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "betaox",
		Short:   "GRB X-ray/optical spectral index calculator",
		Version: a.version,
		Long: `Betaox pairs X-ray and optical afterglow observations of gamma-ray
bursts taken at nearly the same elapsed time, computes the optical to X-ray
spectral index beta_OX for every pairing, and classifies optically dark
bursts.

Input paths, the pairing tolerance, and the output directory can be set in
$HOME/.betaox.yaml, a .env file, or BETAOX_* environment variables.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Flag defaults carry the loaded config so unset flags keep it
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", a.config.ConfigFile, "config file (default is $HOME/.betaox.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", a.config.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("betaox {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)
	if err := a.config.Validate(); err != nil {
		return err
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.CreateRunCommand())
	rootCmd.AddCommand(a.CreateClassifyCommand())
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// configFlag returns the value of --config in args, if any.
func configFlag(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
