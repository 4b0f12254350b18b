package reqy

import "github.com/cockroachdb/errors"

// Sentinel errors for contract violations. These are returned from Validate
// and Preprocess and never reported as Issues; use errors.Is to detect them.
var (
	// ErrInvalidArgument indicates a validator received a value of a type it
	// cannot operate on, such as the length of an integer.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidSchema indicates a malformed schema entry.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidSeverity indicates an unrecognized severity name.
	ErrInvalidSeverity = errors.New("invalid severity")
)

// invalidArgumentf returns an error marked with ErrInvalidArgument.
func invalidArgumentf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

// invalidSchemaf returns an error marked with ErrInvalidSchema.
func invalidSchemaf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidSchema)
}
