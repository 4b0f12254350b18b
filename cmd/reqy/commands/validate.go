package commands

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/reqy/internal/datafile"
	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/internal/logging"
	"github.com/thoreinstein/reqy/internal/paths"
	"github.com/thoreinstein/reqy/internal/report"
	"github.com/thoreinstein/reqy/internal/schemafile"
	"github.com/thoreinstein/reqy/pkg/fileutil"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

var (
	validateSchema      string
	validateFormat      string
	validateInputFormat string
	validateLevel       string
	validateFailOn      string
	validateInteractive bool
	validateRedact      bool
	validateReportFile  string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "",
		"schema file, or the name of a schema in the schema directory")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "",
		"report format: text, json (default from config)")
	validateCmd.Flags().StringVar(&validateInputFormat, "input-format", string(datafile.FormatAuto),
		"data format: auto, json, yaml, toml, markdown")
	validateCmd.Flags().StringVar(&validateLevel, "level", "",
		"default level for literal and built-in checks: error, warning (default from config)")
	validateCmd.Flags().StringVar(&validateFailOn, "fail-on", "",
		"lowest level that fails validation: error, warning (default from config)")
	validateCmd.Flags().BoolVarP(&validateInteractive, "interactive", "i", false,
		"browse issues in a fuzzy finder")
	validateCmd.Flags().BoolVar(&validateRedact, "redact", false,
		"mask secret-looking values in the report")
	validateCmd.Flags().StringVar(&validateReportFile, "report-file", "",
		"also write the JSON report to this file")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <data>",
	Short: "Validate a data file against a schema",
	Long: `Validate a JSON, YAML, TOML or Markdown file against a schema.

The data format is chosen by file extension unless --input-format is given.
Use "-" to read the data from stdin. Markdown files are validated through
their front matter; the text after it is available as the "body" field.

Every failed check is reported. The command fails only when an issue is at
or above the --fail-on level, so warnings can be reported without breaking
a build.

Exit codes:
  0 - No issues at or above the fail-on level
  1 - Validation failed, or the schema or data could not be used
  2 - System error`,
	Example: `  # Validate against a schema file
  reqy validate person.json --schema person.yaml

  # Read from stdin and emit JSON
  cat person.yaml | reqy validate - --schema person --format json

  # Fail on warnings too and keep a report
  reqy validate post.md -s blog-post --fail-on warning --report-file out.json

See Also: reqy schema show, reqy config show`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

// validateOptions are the effective settings after applying config defaults.
type validateOptions struct {
	level  reqy.Severity
	failOn reqy.Severity
	format report.Format
	input  datafile.Format
	redact bool
}

func resolveValidateOptions() (validateOptions, error) {
	opts := validateOptions{
		level:  cfg.Level(),
		failOn: cfg.FailOnLevel(),
		format: report.Format(cfg.OutputFormat),
		redact: cfg.RedactValues || validateRedact,
	}

	var err error
	if validateLevel != "" {
		if opts.level, err = reqy.ParseSeverity(validateLevel); err != nil {
			return opts, errors.NewUserError(errors.Wrap(err, "--level"), "")
		}
	}
	if validateFailOn != "" {
		if opts.failOn, err = reqy.ParseSeverity(validateFailOn); err != nil {
			return opts, errors.NewUserError(errors.Wrap(err, "--fail-on"), "")
		}
	}
	if validateFormat != "" {
		if opts.format, err = report.ParseFormat(validateFormat); err != nil {
			return opts, errors.NewUserError(err, "")
		}
	}
	if opts.input, err = datafile.ParseFormat(validateInputFormat); err != nil {
		return opts, errors.NewUserError(err, "")
	}
	return opts, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	dataPath := args[0]
	if validateSchema == "" {
		return errors.NewUserError(errors.New("--schema is required"),
			"Run: reqy validate "+dataPath+" --schema <file>")
	}

	opts, err := resolveValidateOptions()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := logging.FromContext(cmd.Context()).With("run_id", runID)

	schemaPath, err := paths.ResolveSchema(validateSchema, cfg.SchemaDir)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	engine := reqy.New(reqy.WithDefaultLevel(opts.level), reqy.WithLogger(logger))
	compiler, err := schemafile.NewCompiler(engine)
	if err != nil {
		return err
	}
	schema, err := compiler.CompileFile(schemaPath)
	if err != nil {
		return errors.NewUserError(err, "Run: reqy schema check "+schemaPath)
	}

	data, err := datafile.Load(dataPath, opts.input, cmd.InOrStdin())
	if err != nil {
		return errors.NewUserError(err, "")
	}

	logger.Info("validating", "schema", schemaPath, "data", dataPath)
	issues, err := engine.Validate(data, schema)
	if err != nil {
		return errors.NewUserError(err, "The schema applies a check to a value of the wrong type")
	}

	rep := report.New(issues, opts.failOn)
	rep.RunID = runID
	rep.Schema = schemaPath
	rep.Data = dataPath
	if opts.redact {
		rep = rep.Redacted()
	}
	logger.Info("validation finished", "issues", len(issues), "valid", rep.Valid)

	if validateInteractive && len(rep.Issues) > 0 {
		err = browseIssues(cmd.OutOrStdout(), rep)
	} else {
		err = report.NewReporter(cmd.OutOrStdout(), opts.format).Report(rep)
	}
	if err != nil {
		return err
	}

	if validateReportFile != "" {
		if err := saveReport(validateReportFile, rep); err != nil {
			return err
		}
		logger.Debug("report saved", "path", validateReportFile)
	}

	if !rep.Valid {
		return errors.NewUserError(errors.Wrapf(errors.ErrValidationFailed,
			"%d issue(s) at or above %s", len(issues.AtLeast(opts.failOn)), opts.failOn), "")
	}
	return nil
}

func saveReport(path string, rep *report.Report) error {
	path, err := paths.ExpandHome(path)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating report directory"), "")
	}
	if err := fileutil.AtomicWriteJSON(path, rep); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing report"), "")
	}
	return nil
}
