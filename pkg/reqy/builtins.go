package reqy

import "fmt"

// Exists requires the field to be present and non-nil.
func (e *Engine) Exists() *Validator {
	return NewValidator("exists", e.level, func(value any) (Verdict, error) {
		if indirect(value) == nil {
			return Fail("expected field to exist"), nil
		}
		return Pass, nil
	})
}

// NotEmpty requires a non-nil string or sequence with a length above zero.
// Values of any other type are a contract error.
func (e *Engine) NotEmpty() *Validator {
	return NewValidator("not empty", e.level, func(value any) (Verdict, error) {
		if indirect(value) == nil {
			return Fail("expected field to be non-empty"), nil
		}
		n, err := lengthOf(value)
		if err != nil {
			return Verdict{}, err
		}
		if n == 0 {
			return Fail("expected field to be non-empty"), nil
		}
		return Pass, nil
	})
}

// Equals requires the field to strictly equal expected. Types must match,
// except that numbers compare by value, including numbers nested in slices
// and string-keyed maps: Equals([]any{1, 2}) accepts []any{int64(1), 2.0}.
func (e *Engine) Equals(expected any) *Validator {
	return NewValidator("equals", e.level, func(value any) (Verdict, error) {
		if strictEqual(value, expected) {
			return Pass, nil
		}
		return Failf("expected <%s>, but got <%s>", render(expected), render(value)), nil
	})
}

// In requires the field to equal one of options.
func (e *Engine) In(options ...any) *Validator {
	listed := renderOptions(options)
	return NewValidator("in", e.level, func(value any) (Verdict, error) {
		for _, opt := range options {
			if strictEqual(value, opt) {
				return Pass, nil
			}
		}
		return Failf("expected <%s> to be in array %s", render(value), listed), nil
	})
}

func renderOptions(options []any) string {
	if options == nil {
		options = []any{}
	}
	out, err := humanJSON(options)
	if err != nil {
		return fmt.Sprint(options)
	}
	return out
}

// Custom wraps predicate in a named validator at the engine's default level.
func (e *Engine) Custom(name string, predicate Predicate) *Validator {
	return NewValidator(name, e.level, predicate)
}

// Exists returns Default.Exists().
func Exists() *Validator { return Default.Exists() }

// NotEmpty returns Default.NotEmpty().
func NotEmpty() *Validator { return Default.NotEmpty() }

// Equals returns Default.Equals(expected).
func Equals(expected any) *Validator { return Default.Equals(expected) }

// In returns Default.In(options...).
func In(options ...any) *Validator { return Default.In(options...) }

// Custom returns Default.Custom(name, predicate).
func Custom(name string, predicate Predicate) *Validator { return Default.Custom(name, predicate) }
