package reqy

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity classifies the outcome of a failed check.
type Severity int

const (
	// SeverityError marks a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning marks a non-blocking validation failure.
	SeverityWarning
)

// String returns the severity name as it appears in rendered issues.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	default:
		return 0, errors.Wrapf(ErrInvalidSeverity, "%q (valid: error, warning)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if s != SeverityError && s != SeverityWarning {
		return nil, errors.Wrapf(ErrInvalidSeverity, "%d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
