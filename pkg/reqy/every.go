package reqy

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Every applies inner to each element of a sequence and aggregates the
// failures into a single verdict:
//
//	error at index 1, expected 50 to be odd
//
// for one failing element, and
//
//	errors at indices 1, 2:
//	[1] expected 50 to be odd
//	[2] expected 100 to be odd
//
// for several. The validator is named "every <inner>" and keeps the level of
// inner. A missing value has no elements and passes; a value that is not a
// slice or array is a contract error.
//
// Each element goes through inner.Check, so a preprocessor attached to inner
// runs per element: Every(Length(3).WithPreprocess(trim)) trims every item.
// A preprocessor on the Every validator itself sees the whole sequence.
//
// A nil inner validator yields a validator whose checks fail with
// ErrInvalidSchema.
func (e *Engine) Every(inner *Validator) *Validator {
	if inner == nil {
		return NewValidator("every <nil>", e.level, func(any) (Verdict, error) {
			return Verdict{}, invalidSchemaf("every has no inner validator")
		})
	}
	return NewValidator("every <"+inner.Name()+">", inner.Level(), func(value any) (Verdict, error) {
		if indirect(value) == nil {
			return Pass, nil
		}
		items, err := elementsOf(value)
		if err != nil {
			return Verdict{}, err
		}

		var failed []int
		var details []string
		for i, item := range items {
			verdict, err := inner.Check(item)
			if err != nil {
				return Verdict{}, errors.Wrapf(err, "index %d", i)
			}
			if !verdict.Passed {
				failed = append(failed, i)
				details = append(details, verdict.Details)
			}
		}

		switch len(failed) {
		case 0:
			return Pass, nil
		case 1:
			return Failf("error at index %d, %s", failed[0], details[0]), nil
		}

		indices := make([]string, len(failed))
		lines := make([]string, len(failed))
		for n, i := range failed {
			indices[n] = strconv.Itoa(i)
			lines[n] = "[" + indices[n] + "] " + details[n]
		}
		return Fail("errors at indices " + strings.Join(indices, ", ") + ":\n" + strings.Join(lines, "\n")), nil
	})
}

// Every returns Default.Every(inner).
func Every(inner *Validator) *Validator { return Default.Every(inner) }
