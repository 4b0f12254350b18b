package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/reqy/internal/config"
	"github.com/thoreinstein/reqy/internal/doctor"
	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/internal/paths"
	"github.com/thoreinstein/reqy/internal/schemafile"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

var (
	doctorJSON    bool
	doctorVerbose bool
	doctorFix     bool
)

// Sentinel errors for doctor exit codes.
var (
	errDoctorWarnings = errors.NewExitError(errors.New("doctor found warnings"), 1)
	errDoctorErrors   = errors.NewExitError(errors.New("doctor found errors"), 2)
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "all", false,
		"show every check, including passed ones")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"fix permission problems that can be fixed automatically")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and schema problems",
	Long: `Run diagnostic checks on the reqy configuration, the permissions of
its directories and every schema in the schema directory.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if doctorJSON && doctorVerbose {
			return errors.NewUserError(errors.New("flags --json and --all are mutually exclusive"), "")
		}
		return nil
	},
	RunE: runDoctor,
}

func newDoctorRunner() *doctor.Runner {
	schemaDir := paths.SchemaDir()
	if cfg != nil {
		schemaDir = cfg.SchemaDir
	}
	level := config.Default().Level()
	if cfg != nil {
		level = cfg.Level()
	}

	targets := []doctor.Target{
		{Path: paths.ConfigDir(), IsDir: true},
		{Path: schemaDir, IsDir: true},
		{Path: paths.ReportDir(), IsDir: true},
	}
	if used := viper.ConfigFileUsed(); used != "" {
		targets = append(targets, doctor.Target{Path: used})
	}

	compile := func(path string) error {
		compiler, err := schemafile.NewCompiler(reqy.New(reqy.WithDefaultLevel(level)))
		if err != nil {
			return err
		}
		_, err = compiler.CompileFile(path)
		return err
	}

	return doctor.NewRunner(
		&doctor.ConfigCheck{Path: viper.ConfigFileUsed(), LoadErr: configLoadErr},
		doctor.NewPathPermissionCheck(targets...),
		&doctor.SchemaCheck{Dir: schemaDir, Compile: compile},
	)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner := newDoctorRunner()
	rep := runner.Run()

	if doctorFix {
		for _, c := range runner.Checks() {
			fixer, ok := c.(doctor.Fixer)
			if !ok || !fixer.CanFix() {
				continue
			}
			for _, res := range fixer.Fix() {
				fmt.Fprintf(cmd.OutOrStdout(), "fixed %s: %s\n", filepath.Base(res.Path), res.Description)
			}
		}
		rep = runner.Run()
	}

	out := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		writeDoctorText(out, rep, doctorVerbose)
	}

	if rep.HasErrors() {
		return errDoctorErrors
	}
	if rep.HasWarnings() {
		return errDoctorWarnings
	}
	return nil
}

func writeDoctorText(w io.Writer, rep *doctor.Report, showAll bool) {
	hasOutput := false
	for _, result := range rep.Results {
		if !showAll && result.Status != doctor.StatusError && result.Status != doctor.StatusWarning {
			continue
		}
		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && result.Status != doctor.StatusPass {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}
	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		rep.Summary.Passed, rep.Summary.Info, rep.Summary.Warnings, rep.Summary.Errors)
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusPass:
		return "✓"
	case doctor.StatusInfo:
		return "ℹ"
	case doctor.StatusWarning:
		return "⚠"
	default:
		return "✗"
	}
}
