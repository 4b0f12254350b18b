package reqy

import (
	"slices"
	"sort"
)

// Entry is one requirement in a Schema.
//
// A keyed entry binds Key to a Requirement. An entry with an empty Key is the
// bare-field shorthand: Requirement holds the field name and the field is
// required to exist.
type Entry struct {
	Key         string
	Requirement any
}

// Schema is an ordered requirement tree. Order determines the order of the
// issues produced by Validate.
//
// A requirement is one of:
//   - a *Validator;
//   - a nested Schema, a map[string]any (visited in sorted key order) or a
//     []string of required field names;
//   - a raw predicate: a Predicate, func(any) (Verdict, error) or
//     func(any) bool;
//   - any other value, which is a literal the field must equal.
//
// Preprocessing rewrites entries in place until every leaf is a *Validator.
type Schema []Entry

// Field returns a keyed schema entry.
func Field(key string, requirement any) Entry {
	return Entry{Key: key, Requirement: requirement}
}

// Bare returns a bare-field entry: the named field must exist.
func Bare(name string) Entry {
	return Entry{Requirement: name}
}

// Fields returns a schema requiring each named field to exist.
func Fields(names ...string) Schema {
	s := make(Schema, len(names))
	for i, name := range names {
		s[i] = Bare(name)
	}
	return s
}

// IsBare reports whether the entry uses the bare-field shorthand.
func (e Entry) IsBare() bool {
	return e.Key == ""
}

// Get returns the requirement for key at the top level of the schema.
func (s Schema) Get(key string) (any, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Requirement, true
		}
	}
	return nil, false
}

// Keys returns the top-level keys in order. Bare entries contribute the
// field name they require.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, e := range s {
		if e.IsBare() {
			if name, ok := e.Requirement.(string); ok {
				keys = append(keys, name)
			}
			continue
		}
		keys = append(keys, e.Key)
	}
	return keys
}

// Clone returns a deep copy of the schema tree. Validators are shared, not
// copied. Use Clone to keep a pristine schema before preprocessing.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for i, e := range s {
		out[i] = Entry{Key: e.Key, Requirement: cloneRequirement(e.Requirement)}
	}
	return out
}

func cloneRequirement(req any) any {
	switch r := req.(type) {
	case Schema:
		return r.Clone()
	case map[string]any:
		m := make(map[string]any, len(r))
		for k, v := range r {
			m[k] = cloneRequirement(v)
		}
		return m
	case []string:
		return slices.Clone(r)
	default:
		return req
	}
}

// Canonical reports whether every leaf of the schema is a *Validator, that
// is, whether preprocessing it would be a no-op.
func Canonical(s Schema) bool {
	for _, e := range s {
		if e.IsBare() {
			return false
		}
		switch r := e.Requirement.(type) {
		case *Validator:
			if r == nil {
				return false
			}
		case Schema:
			if !Canonical(r) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// schemaFromMap converts a map into a Schema ordered by key.
func schemaFromMap(m map[string]any) Schema {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make(Schema, len(keys))
	for i, k := range keys {
		s[i] = Field(k, m[k])
	}
	return s
}
