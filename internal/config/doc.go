// Package config provides configuration management for the reqy CLI.
//
// # Configuration File
//
// Configuration is read from ./config.yaml or ~/.config/reqy/config.yaml,
// and every key can be overridden with a REQY_ environment variable
// (REQY_FAIL_ON=warning):
//
//	version: 1
//	default_level: error     # severity of shorthand literals and built-ins
//	output_format: text      # text | json
//	fail_on: error           # error | warning
//	redact_values: false     # mask secret-looking values in reports
//	schema_dir: ~/.config/reqy/schemas
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return errors.Wrap(err, "loading config")
//	}
//
// Loaded configurations are validated automatically; [Validate] returns
// every problem at once.
package config
