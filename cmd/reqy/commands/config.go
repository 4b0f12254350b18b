package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/reqy/internal/config"
	"github.com/thoreinstein/reqy/internal/editor"
	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/internal/paths"
	"github.com/thoreinstein/reqy/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage reqy configuration",
	Long: `Manage reqy configuration stored in $XDG_CONFIG_HOME/reqy/config.yaml.

Every setting can also be given as a REQY_ environment variable, such as
REQY_FAIL_ON=warning. Without a subcommand, shows the effective configuration.`,
	Example: `  # Show the effective configuration
  reqy config

  # Write a default config file
  reqy config init

See Also: reqy doctor`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Print the configuration after applying defaults, the config file and environment variables, in YAML format.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a config file with default settings and create the schema
directory. Uses --config as the destination when given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your editor.

If no configuration file exists, run 'reqy config init' first.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		used := viper.ConfigFileUsed()
		if used == "" {
			used = defaultConfigPath()
		}
		fmt.Fprintln(cmd.OutOrStdout(), used)
		return nil
	},
}

func defaultConfigPath() string {
	if configFile != "" {
		return configFile
	}
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return errors.Wrap(err, "writing config")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := defaultConfigPath()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path),
			"Use --force to overwrite it")
	}

	defaults := config.Default()
	if dir := viper.GetString("schema_dir"); dir != "" {
		defaults.SchemaDir = dir
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
	}
	if err := paths.EnsureDir(defaults.SchemaDir, 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating schema directory"), "")
	}
	if err := fileutil.AtomicWriteYAML(path, defaults, 0o600); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Schemas directory: %s\n", defaults.SchemaDir)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = defaultConfigPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.NewUserError(errors.Newf("config file not found at %s", path), "Run: reqy config init")
	}
	return editor.Open(cmd.Context(), path)
}
