package reqy

import "fmt"

// Even requires an integral number divisible by two.
func (e *Engine) Even() *Validator {
	return NewValidator("even", e.level, parity("even", func(n int64) bool { return n%2 == 0 }))
}

// Odd requires an integral number not divisible by two.
func (e *Engine) Odd() *Validator {
	return NewValidator("odd", e.level, parity("odd", func(n int64) bool { return n%2 != 0 }))
}

// parity fails values that are not integral numbers with the same message
// as a number of the wrong parity.
func parity(name string, ok func(int64) bool) Predicate {
	return func(value any) (Verdict, error) {
		n, isInt := asInt(indirect(value))
		if isInt && ok(n) {
			return Pass, nil
		}
		return Failf("expected %s to be %s", render(indirect(value)), name), nil
	}
}

// Range requires a number within [min, max].
func (e *Engine) Range(min, max float64) *Validator {
	return NewValidator("range", e.level, rangePredicate(bounds{min: min, max: max, hasMax: true}))
}

// AtLeast requires a number no smaller than min. It is the open-ended form
// of Range and reports under the same name.
func (e *Engine) AtLeast(min float64) *Validator {
	return NewValidator("range", e.level, rangePredicate(bounds{min: min}))
}

func rangePredicate(b bounds) Predicate {
	return func(value any) (Verdict, error) {
		value = indirect(value)
		if value == nil {
			return b.missing("value"), nil
		}
		f, ok := asFloat(value)
		if !ok {
			return Verdict{}, invalidArgumentf("cannot compare %s to a numeric range", typeName(value))
		}
		return b.check("value", f, render(value)), nil
	}
}

// bounds is an inclusive range, open-ended above unless hasMax is set.
type bounds struct {
	min    float64
	max    float64
	hasMax bool
}

func (b bounds) contains(x float64) bool {
	return x >= b.min && (!b.hasMax || x <= b.max)
}

func (b bounds) describe(label string) string {
	if b.hasMax {
		return fmt.Sprintf("expected %s to be in range (%s, %s)", label, render(b.min), render(b.max))
	}
	return fmt.Sprintf("expected %s to be at least %s", label, render(b.min))
}

func (b bounds) check(label string, x float64, shown string) Verdict {
	if b.contains(x) {
		return Pass
	}
	return Failf("%s, but got %s", b.describe(label), shown)
}

func (b bounds) missing(label string) Verdict {
	return Failf("%s, but value is missing", b.describe(label))
}

// Even returns Default.Even().
func Even() *Validator { return Default.Even() }

// Odd returns Default.Odd().
func Odd() *Validator { return Default.Odd() }

// Range returns Default.Range(min, max).
func Range(min, max float64) *Validator { return Default.Range(min, max) }

// AtLeast returns Default.AtLeast(min).
func AtLeast(min float64) *Validator { return Default.AtLeast(min) }
