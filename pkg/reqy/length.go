package reqy

import (
	"reflect"
	"strconv"
	"strings"
)

// Length requires a string of exactly n characters or a sequence of exactly
// n elements. A missing value fails; any other type is a contract error.
func (e *Engine) Length(n int) *Validator {
	return NewValidator("length", e.level, func(value any) (Verdict, error) {
		if indirect(value) == nil {
			return Failf("expected length to be %d, but value is missing", n), nil
		}
		l, err := lengthOf(value)
		if err != nil {
			return Verdict{}, err
		}
		if l != n {
			return Failf("expected length to be %d, but got %d", n, l), nil
		}
		return Pass, nil
	})
}

// LengthRange requires a length within [min, max].
func (e *Engine) LengthRange(min, max int) *Validator {
	return NewValidator("length range", e.level, countRange("length", lengthOf,
		bounds{min: float64(min), max: float64(max), hasMax: true}))
}

// LengthAtLeast requires a length of at least min.
func (e *Engine) LengthAtLeast(min int) *Validator {
	return NewValidator("length range", e.level, countRange("length", lengthOf, bounds{min: float64(min)}))
}

// WordCount requires a string of exactly n whitespace-separated words.
func (e *Engine) WordCount(n int) *Validator {
	return NewValidator("word count", e.level, func(value any) (Verdict, error) {
		if indirect(value) == nil {
			return Failf("expected word count to be %d, but value is missing", n), nil
		}
		c, err := wordCount(value)
		if err != nil {
			return Verdict{}, err
		}
		if c != n {
			return Failf("expected word count to be %d, but got %d", n, c), nil
		}
		return Pass, nil
	})
}

// WordCountRange requires a word count within [min, max].
func (e *Engine) WordCountRange(min, max int) *Validator {
	return NewValidator("word count range", e.level, countRange("word count", wordCount,
		bounds{min: float64(min), max: float64(max), hasMax: true}))
}

// WordCountAtLeast requires a word count of at least min.
func (e *Engine) WordCountAtLeast(min int) *Validator {
	return NewValidator("word count range", e.level, countRange("word count", wordCount, bounds{min: float64(min)}))
}

func countRange(label string, count func(any) (int, error), b bounds) Predicate {
	return func(value any) (Verdict, error) {
		if indirect(value) == nil {
			return b.missing(label), nil
		}
		n, err := count(value)
		if err != nil {
			return Verdict{}, err
		}
		return b.check(label, float64(n), strconv.Itoa(n)), nil
	}
}

// wordCount counts whitespace-separated words in a string.
func wordCount(value any) (int, error) {
	value = indirect(value)
	if s, ok := value.(string); ok {
		return len(strings.Fields(s)), nil
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
		return len(strings.Fields(rv.String())), nil
	}
	return 0, invalidArgumentf("cannot count words of %s", typeName(value))
}

// Length returns Default.Length(n).
func Length(n int) *Validator { return Default.Length(n) }

// LengthRange returns Default.LengthRange(min, max).
func LengthRange(min, max int) *Validator { return Default.LengthRange(min, max) }

// LengthAtLeast returns Default.LengthAtLeast(min).
func LengthAtLeast(min int) *Validator { return Default.LengthAtLeast(min) }

// WordCount returns Default.WordCount(n).
func WordCount(n int) *Validator { return Default.WordCount(n) }

// WordCountRange returns Default.WordCountRange(min, max).
func WordCountRange(min, max int) *Validator { return Default.WordCountRange(min, max) }

// WordCountAtLeast returns Default.WordCountAtLeast(min).
func WordCountAtLeast(min int) *Validator { return Default.WordCountAtLeast(min) }
