// Package commands implements the CLI commands for reqy.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/reqy/cmd"
	"github.com/thoreinstein/reqy/internal/config"
	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the configuration loaded before every command runs.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/reqy/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("reqy version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	viper.Reset()
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "reqy",
	Short: "Declarative validation for structured data",
	Long: `reqy validates JSON, YAML, TOML and Markdown front matter against
declarative schemas.

A schema names the fields the data must have and the checks each field
must pass. Checks that fail are reported as issues with an ERROR or
WARNING level; validation never stops at the first issue.`,
	Example: `  # Validate a file against a schema
  reqy validate person.json --schema person.yaml

  # Use a schema stored in the schema directory
  reqy validate post.md --schema blog-post

  # Inspect a compiled schema
  reqy schema show person.yaml

  See Also: reqy config, reqy doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		logging.ConfigureColor(cmd.OutOrStdout())
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	level := slog.LevelError
	if !quiet {
		v := verbosity
		if v == 0 {
			v = logging.VerbosityFromEnv()
		}
		level = logging.LevelFromVerbosity(v)
	}

	logCfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		logCfg.File = f
	}

	logger := logging.New(logCfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// configTolerant lists commands that run even when the config is broken.
var configTolerant = map[string]bool{
	"help":    true,
	"version": true,
	"init":    true,
	"doctor":  true,
	"gen-doc": true,
}

// checkConfig surfaces config load errors for commands that need a config.
func checkConfig(cmd *cobra.Command) error {
	if configLoadErr == nil || configTolerant[cmd.Name()] {
		return nil
	}
	return errors.NewConfigError(configLoadErr)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
