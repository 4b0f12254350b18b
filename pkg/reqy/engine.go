package reqy

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// Option configures an Engine.
type Option func(*Engine)

// Engine preprocesses schemas and validates data against them.
//
// An Engine holds no per-call state and is safe for concurrent use. A Schema
// that has not been preprocessed yet must not be shared between concurrent
// Validate calls because preprocessing rewrites it in place.
type Engine struct {
	level    Severity
	resolver Resolver
	logger   *slog.Logger
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		level:    SeverityError,
		resolver: DefaultResolver(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithDefaultLevel sets the severity used by the built-in factories and by
// literal shorthand entries.
func WithDefaultLevel(level Severity) Option {
	return func(e *Engine) {
		e.level = level
	}
}

// WithResolver replaces the field resolution strategy.
func WithResolver(r Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// DefaultLevel returns the engine's default severity.
func (e *Engine) DefaultLevel() Severity {
	return e.level
}

// Validate preprocesses schema in place and validates data against it.
//
// Every failed check is returned as an Issue, in schema order. The error is
// reserved for contract violations such as a malformed schema or a validator
// applied to a value of the wrong type; when it is non-nil the issues are nil.
func (e *Engine) Validate(data any, schema Schema) (Issues, error) {
	if err := e.Preprocess(schema); err != nil {
		return nil, err
	}
	return e.ValidatePreprocessed(data, schema)
}

// ValidatePreprocessed validates data against a schema that has already been
// through Preprocess. It does not modify the schema, so a canonical schema
// can be shared by concurrent calls.
func (e *Engine) ValidatePreprocessed(data any, schema Schema) (Issues, error) {
	var issues Issues
	if err := e.validate(data, schema, "", &issues); err != nil {
		return nil, err
	}
	e.logger.Debug("validation finished", "fields", len(schema), "issues", len(issues))
	return issues, nil
}

func (e *Engine) validate(data any, schema Schema, baseKey string, issues *Issues) error {
	for _, entry := range schema {
		if entry.IsBare() {
			return invalidSchemaf("bare entry %v under %q was not preprocessed", entry.Requirement, baseKey)
		}

		key := entry.Key
		if baseKey != "" {
			key = baseKey + "." + entry.Key
		}
		value, found := e.resolver.Resolve(data, entry.Key)

		switch req := entry.Requirement.(type) {
		case Schema:
			if err := e.validate(value, req, key, issues); err != nil {
				return err
			}
		case *Validator:
			if req == nil {
				return invalidSchemaf("nil validator for %q", key)
			}
			verdict, err := req.Check(value)
			if err != nil {
				return errors.Wrapf(err, "validating %q with %s", key, req.Name())
			}
			if verdict.Passed {
				continue
			}
			e.logger.Debug("check failed",
				"key", key,
				"validator", req.Name(),
				"level", req.Level().String(),
				"found", found,
			)
			issue := NewIssue(req.Level(), req.Name(), verdict.Details).WithKey(key)
			if found {
				issue = issue.WithValue(value)
			}
			*issues = append(*issues, issue)
		default:
			return invalidSchemaf("requirement for %q is %T, not a validator; preprocess the schema first", key, req)
		}
	}
	return nil
}

// Default is the engine used by the package-level functions.
var Default = New()

// Validate validates data against schema with the Default engine.
func Validate(data any, schema Schema) (Issues, error) {
	return Default.Validate(data, schema)
}

// Preprocess canonicalizes schema in place with the Default engine.
func Preprocess(schema Schema) error {
	return Default.Preprocess(schema)
}
