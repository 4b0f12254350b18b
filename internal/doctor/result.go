// Package doctor runs diagnostic checks on the reqy installation: the
// configuration file, the permissions of reqy's directories and the schemas
// stored in the schema directory.
package doctor

import "github.com/thoreinstein/reqy/internal/errors"

// Status indicates the outcome level of a check result.
type Status int

const (
	// StatusPass indicates the check passed without issues.
	StatusPass Status = iota

	// StatusInfo indicates informational output, not a problem.
	StatusInfo

	// StatusWarning indicates a potential issue that doesn't prevent operation.
	StatusWarning

	// StatusError indicates a problem that prevents proper operation.
	StatusError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusInfo:
		return "info"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{StatusPass, StatusInfo, StatusWarning, StatusError} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return errors.Newf("unknown status %q", text)
}

// CheckResult represents the outcome of a single diagnostic check.
type CheckResult struct {
	// Name is the identifier for this check.
	Name string `json:"name"`

	// Category groups related checks (e.g., "config", "filesystem").
	Category string `json:"category"`

	// Status indicates the outcome of the check.
	Status Status `json:"status"`

	// Message describes the check outcome.
	Message string `json:"message"`

	// Details contains additional context about the check result.
	Details map[string]any `json:"details,omitempty"`

	// Fixable indicates whether reqy can fix this issue with --fix.
	Fixable bool `json:"fixable,omitempty"`

	// FixHint provides guidance on how to resolve the issue.
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary aggregates counts of check results by status.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}
