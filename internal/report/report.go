package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/thoreinstein/reqy/internal/redact"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", errors.Newf("unknown output format %q (valid: text, json)", s)
	}
}

// Report is the outcome of validating one data file against one schema.
type Report struct {
	// Valid is false when any issue is at or above the fail-on level.
	Valid bool `json:"valid"`
	// RunID identifies the run in logs and saved reports.
	RunID string `json:"runId,omitempty"`
	// Schema and Data name the inputs.
	Schema string `json:"schema,omitempty"`
	Data   string `json:"data,omitempty"`
	// FailOn is the lowest severity that makes the report invalid.
	FailOn reqy.Severity `json:"failOn"`
	// Issues are all failed checks in schema order.
	Issues reqy.Issues `json:"issues"`
}

// New builds a report for issues. The report is invalid when any issue is
// at least as severe as failOn.
func New(issues reqy.Issues, failOn reqy.Severity) *Report {
	if issues == nil {
		issues = reqy.Issues{}
	}
	return &Report{
		Valid:  len(issues.AtLeast(failOn)) == 0,
		FailOn: failOn,
		Issues: issues,
	}
}

// Redacted returns a copy of the report whose issue values are masked.
func (r *Report) Redacted() *Report {
	out := *r
	out.Issues = redact.Issues(r.Issues)
	return &out
}

// Reporter formats and writes validation reports.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the report to the output.
func (r *Reporter) Report(rep *Report) error {
	if rep == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(rep)
	default:
		return r.reportText(rep)
	}
}

func (r *Reporter) reportJSON(rep *Report) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return errors.Wrap(encoder.Encode(rep), "encoding JSON report")
}

func (r *Reporter) reportText(rep *Report) error {
	if len(rep.Issues) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed"))
		return nil
	}

	errs := rep.Issues.Errors()
	warnings := rep.Issues.Warnings()

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	verdict := "Validation failed"
	if rep.Valid {
		verdict = "Validation passed with findings"
	}
	fmt.Fprintf(r.out, "%s: %s\n\n", verdict, strings.Join(summary, ", "))

	if len(errs) > 0 {
		fmt.Fprintln(r.out, "Errors:")
		for _, issue := range errs {
			r.printIssue(issue, color.FgRed)
		}
		fmt.Fprintln(r.out)
	}

	if len(warnings) > 0 {
		fmt.Fprintln(r.out, "Warnings:")
		for _, issue := range warnings {
			r.printIssue(issue, color.FgYellow)
		}
		fmt.Fprintln(r.out)
	}

	return nil
}

// printIssue writes one issue as
//
//	• key: validation: details [value]
//
// Continuation lines of multi-line details are indented under the bullet.
func (r *Reporter) printIssue(i reqy.Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	var sb strings.Builder
	sb.WriteString("  • ")

	if i.Key != "" {
		sb.WriteString(printer(i.Key))
		sb.WriteString(": ")
	}
	sb.WriteString(i.ValidationName)
	sb.WriteString(": ")
	sb.WriteString(strings.ReplaceAll(i.Details, "\n", "\n    "))

	if i.HasValue {
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", truncate(reqy.FormatValue(i.Value))))
	}

	fmt.Fprintln(r.out, sb.String())
}

// truncate shortens long values to 50 runes.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) > 50 {
		return string(runes[:47]) + "..."
	}
	return s
}
