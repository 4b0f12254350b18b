package reqy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// render formats a value for failure messages: strings verbatim, nil as
// null, numbers in their shortest decimal form and everything else as JSON.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}

	if i, ok := asInt(v); ok {
		return strconv.FormatInt(i, 10)
	}
	if f, ok := asFloat(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String()
	}

	out, err := humanJSON(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return out
}

// humanJSON encodes v as compact JSON for messages, leaving <, > and &
// unescaped.
func humanJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// indirect unwraps pointers and interfaces. It returns nil for nil pointers.
func indirect(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// isNumeric reports whether v is any Go number type or a json.Number.
func isNumeric(v any) bool {
	_, ok := asFloat(v)
	return ok
}

// asInt returns v as an int64 when it is an integer type, or a float or
// json.Number holding an integral value.
func asInt(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	}
	return 0, false
}

// floatToInt converts an integral float inside the int64 range. The upper
// bound is exclusive: float64(math.MaxInt64) rounds up to 2^63.
func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= 0x1p63 || f < -0x1p63 {
		return 0, false
	}
	return int64(f), true
}

// asFloat returns v as a float64 when it is any number type.
func asFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// strictEqual compares two values by dynamic type and deep equality. Numbers
// of different Go types compare by value so that an int literal in a schema
// matches the int64 or float64 a decoder produced. The same rule applies to
// the elements of slices and arrays and to the values of string-keyed maps.
func strictEqual(a, b any) bool {
	if isNumeric(a) && isNumeric(b) {
		ai, aInt := asInt(a)
		bi, bInt := asInt(b)
		if aInt && bInt {
			return ai == bi
		}
		af, _ := asFloat(a)
		bf, _ := asFloat(b)
		return af == bf
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case isSequence(av) && isSequence(bv):
		if av.Len() != bv.Len() {
			return false
		}
		for i := range av.Len() {
			if !strictEqual(av.Index(i).Interface(), bv.Index(i).Interface()) {
				return false
			}
		}
		return true
	case isStringMap(av) && isStringMap(bv):
		if av.Len() != bv.Len() {
			return false
		}
		iter := av.MapRange()
		for iter.Next() {
			other := bv.MapIndex(reflect.ValueOf(iter.Key().String()).Convert(bv.Type().Key()))
			if !other.IsValid() || !strictEqual(iter.Value().Interface(), other.Interface()) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func isSequence(rv reflect.Value) bool {
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

func isStringMap(rv reflect.Value) bool {
	return rv.IsValid() && rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// lengthOf returns the rune count of a string or the element count of a
// slice or array. Any other type is a contract error.
func lengthOf(v any) (int, error) {
	v = indirect(v)
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), nil
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), nil
	}
	return 0, invalidArgumentf("cannot determine length of %s", typeName(v))
}

// elementsOf returns the elements of a slice or array in index order.
func elementsOf(v any) ([]any, error) {
	v = indirect(v)
	if items, ok := v.([]any); ok {
		return items, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, nil
	}
	return nil, invalidArgumentf("cannot iterate over %s", typeName(v))
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).String()
}
