// Package config provides configuration management for reqy using Viper.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/reqy/internal/paths"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

// Output formats for reports.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version      int    `mapstructure:"version" yaml:"version"`
	DefaultLevel string `mapstructure:"default_level" yaml:"default_level"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	FailOn       string `mapstructure:"fail_on" yaml:"fail_on"`
	RedactValues bool   `mapstructure:"redact_values" yaml:"redact_values"`
	SchemaDir    string `mapstructure:"schema_dir" yaml:"schema_dir"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("REQY")
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("default_level", d.DefaultLevel)
	viper.SetDefault("output_format", d.OutputFormat)
	viper.SetDefault("fail_on", d.FailOn)
	viper.SetDefault("redact_values", d.RedactValues)
	viper.SetDefault("schema_dir", d.SchemaDir)
}

// Default returns the configuration used when no file or environment
// variable overrides a setting.
func Default() *Config {
	return &Config{
		Version:      1,
		DefaultLevel: "error",
		OutputFormat: FormatText,
		FailOn:       "error",
		SchemaDir:    paths.SchemaDir(),
	}
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file.
// If path is empty, it searches the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if cfg.SchemaDir != "" {
		dir, err := paths.ExpandHome(cfg.SchemaDir)
		if err != nil {
			return nil, err
		}
		cfg.SchemaDir = dir
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Join(errs...), ErrInvalid)
	}
	return &cfg, nil
}

// Level returns the parsed default level. Call it on a validated Config.
func (c *Config) Level() reqy.Severity {
	level, _ := reqy.ParseSeverity(c.DefaultLevel)
	return level
}

// FailOnLevel returns the parsed fail-on level. Call it on a validated Config.
func (c *Config) FailOnLevel() reqy.Severity {
	level, _ := reqy.ParseSeverity(c.FailOn)
	return level
}
