package reqy

import (
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Resolver looks up the value of a field in a data value. The boolean result
// is false when the field does not exist; missing fields validate as nil.
type Resolver interface {
	Resolve(data any, key string) (any, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(data any, key string) (any, bool)

// Resolve calls f(data, key).
func (f ResolverFunc) Resolve(data any, key string) (any, bool) {
	return f(data, key)
}

// FieldResolver is implemented by data values that resolve their own fields.
// It takes priority over every reflective strategy.
type FieldResolver interface {
	ResolveField(key string) (any, bool)
}

// ChainResolver tries each resolver in order and returns the first hit.
type ChainResolver []Resolver

// Resolve implements Resolver.
func (c ChainResolver) Resolve(data any, key string) (any, bool) {
	if indirect(data) == nil {
		return nil, false
	}
	for _, r := range c {
		if v, ok := r.Resolve(data, key); ok {
			return v, true
		}
	}
	return nil, false
}

// DefaultResolver returns the object-style resolution chain: the data's own
// FieldResolver, then accessor methods, then map keys, then struct fields.
func DefaultResolver() Resolver {
	return ChainResolver{
		SelfResolver{},
		AccessorResolver{},
		MapResolver{},
		StructResolver{},
	}
}

// SelfResolver defers to data values implementing FieldResolver.
type SelfResolver struct{}

// Resolve implements Resolver.
func (SelfResolver) Resolve(data any, key string) (any, bool) {
	if fr, ok := data.(FieldResolver); ok {
		return fr.ResolveField(key)
	}
	return nil, false
}

// AccessorResolver calls a zero-argument accessor method named after the
// key: Get<Key> first, then <Key>. "canHeFixIt" looks for GetCanHeFixIt and
// CanHeFixIt. Only methods with exactly one result count as accessors, so a
// method returning (T, error) is never mistaken for a field. Methods with a
// pointer receiver are found on values too.
type AccessorResolver struct{}

// Resolve implements Resolver.
func (AccessorResolver) Resolve(data any, key string) (any, bool) {
	rv := reflect.ValueOf(data)
	if !rv.IsValid() || key == "" {
		return nil, false
	}
	if rv.Kind() != reflect.Pointer {
		addressable := reflect.New(rv.Type())
		addressable.Elem().Set(rv)
		rv = addressable
	} else if rv.IsNil() {
		return nil, false
	}

	name := capitalize(key)
	for _, candidate := range []string{"Get" + name, name} {
		m := rv.MethodByName(candidate)
		if !m.IsValid() {
			continue
		}
		if m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
			continue
		}
		return m.Call(nil)[0].Interface(), true
	}
	return nil, false
}

// MapResolver looks the key up in any map with string keys.
type MapResolver struct{}

// Resolve implements Resolver.
func (MapResolver) Resolve(data any, key string) (any, bool) {
	data = indirect(data)
	if m, ok := data.(map[string]any); ok {
		v, ok := m[key]
		return v, ok
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// StructResolver reads an exported struct field whose name is the
// capitalized key or whose json or yaml tag names the key.
type StructResolver struct{}

// Resolve implements Resolver.
func (StructResolver) Resolve(data any, key string) (any, bool) {
	rv := reflect.ValueOf(indirect(data))
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	name := capitalize(key)
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Name == name || tagName(f, "json") == key || tagName(f, "yaml") == key {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func tagName(f reflect.StructField, tag string) string {
	name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
	return name
}

// capitalize upper-cases the first letter of key and keeps the rest as is.
// A Caser is stateful, so one is created per call.
func capitalize(key string) string {
	return cases.Title(language.Und, cases.NoLower).String(key)
}
