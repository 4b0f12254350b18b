package config

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/reqy/pkg/reqy"
)

// Validation errors for configuration fields.
var (
	// ErrInvalid marks any configuration that failed Validate.
	ErrInvalid = errors.New("invalid configuration")

	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidFormat indicates an unrecognized output format.
	ErrInvalidFormat = errors.New("invalid output format")
)

// configSchema describes a valid Config. Keys are the yaml tags, which the
// engine's struct resolver understands.
var configSchema = func() reqy.Schema {
	severity := reqy.Custom("severity", func(v any) (reqy.Verdict, error) {
		s, _ := v.(string)
		if _, err := reqy.ParseSeverity(s); err != nil {
			return reqy.Failf("expected %q to be error or warning", s), nil
		}
		return reqy.Pass, nil
	})

	s := reqy.Schema{
		reqy.Field("version", reqy.AtLeast(1)),
		reqy.Field("output_format", reqy.In(FormatText, FormatJSON)),
		reqy.Field("default_level", severity),
		reqy.Field("fail_on", severity),
	}
	if err := reqy.Preprocess(s); err != nil {
		panic(err)
	}
	return s
}()

// fieldErrors maps a failing key to the sentinel its FieldError wraps.
var fieldErrors = map[string]error{
	"output_format": ErrInvalidFormat,
	"default_level": reqy.ErrInvalidSeverity,
	"fail_on":       reqy.ErrInvalidSeverity,
}

// Validate checks a Config for validity.
// Returns nil if valid, or one error per invalid field in declaration order.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	issues, err := reqy.Default.ValidatePreprocessed(cfg, configSchema)
	if err != nil {
		return []error{err}
	}

	var errs []error
	for _, issue := range issues {
		if issue.Key == "version" {
			errs = append(errs, ErrVersionTooLow)
			continue
		}
		errs = append(errs, &FieldError{
			Field: issue.Key,
			Value: fmt.Sprint(issue.Value),
			Err:   fieldErrors[issue.Key],
		})
	}
	return errs
}

// FieldError represents an invalid value for a specific field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
