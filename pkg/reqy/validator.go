package reqy

import "fmt"

// Verdict is the outcome of a single predicate evaluation.
type Verdict struct {
	// Passed is true when the value satisfied the predicate.
	Passed bool
	// Details describes the failure. It is empty for passing verdicts.
	Details string
}

// Pass is the verdict returned by a satisfied predicate.
var Pass = Verdict{Passed: true}

// Fail returns a failing verdict with the given details.
func Fail(details string) Verdict {
	return Verdict{Details: details}
}

// Failf returns a failing verdict with formatted details.
func Failf(format string, args ...any) Verdict {
	return Verdict{Details: fmt.Sprintf(format, args...)}
}

// Predicate checks a single value.
//
// A data-driven failure is reported through the Verdict. A non-nil error means
// the predicate could not be applied at all (for example, asking for the
// length of a number) and aborts the whole validation.
type Predicate func(value any) (Verdict, error)

// Preprocessor transforms a value before the predicate sees it.
type Preprocessor func(value any) any

// Validator binds a name and a severity level to a predicate, with an
// optional preprocessor applied before the predicate runs.
//
// The With* methods modify the receiver and return it so calls can be
// chained. A Validator may be shared by several schema entries once it is
// fully configured.
type Validator struct {
	name       string
	level      Severity
	predicate  Predicate
	preprocess Preprocessor
}

// NewValidator creates a Validator.
func NewValidator(name string, level Severity, predicate Predicate) *Validator {
	return &Validator{
		name:      name,
		level:     level,
		predicate: predicate,
	}
}

// Name returns the validator name reported in issues.
func (v *Validator) Name() string {
	return v.name
}

// Level returns the severity of issues produced by this validator.
func (v *Validator) Level() Severity {
	return v.level
}

// Predicate returns the predicate function.
func (v *Validator) Predicate() Predicate {
	return v.predicate
}

// Preprocessor returns the preprocessor, or nil if none is attached.
func (v *Validator) Preprocessor() Preprocessor {
	return v.preprocess
}

// WithName sets the validator name.
func (v *Validator) WithName(name string) *Validator {
	v.name = name
	return v
}

// WithLevel sets the severity level.
func (v *Validator) WithLevel(level Severity) *Validator {
	v.level = level
	return v
}

// WithPredicate replaces the predicate.
func (v *Validator) WithPredicate(predicate Predicate) *Validator {
	v.predicate = predicate
	return v
}

// WithPreprocess attaches a preprocessor, replacing any previous one.
func (v *Validator) WithPreprocess(preprocess Preprocessor) *Validator {
	v.preprocess = preprocess
	return v
}

// Check applies the preprocessor, if any, and then the predicate.
func (v *Validator) Check(value any) (Verdict, error) {
	if v.preprocess != nil {
		value = v.preprocess(value)
	}
	if v.predicate == nil {
		return Verdict{}, invalidSchemaf("validator %q has no predicate", v.name)
	}
	return v.predicate(value)
}

// String returns the validator name and level, e.g. "length (ERROR)".
func (v *Validator) String() string {
	return fmt.Sprintf("%s (%s)", v.name, v.level)
}
