package reqy

// customValidatorName is the name given to raw predicates found in a schema.
const customValidatorName = "custom validator"

// Preprocess rewrites schema in place into canonical form, where every leaf
// is a *Validator:
//
//   - a bare entry becomes Field(name, e.Exists()) at the same position;
//   - nested schemas are preprocessed recursively; maps and string lists are
//     first converted to a Schema;
//   - raw predicates become a "custom validator" at SeverityError, whatever
//     the engine's default level;
//   - validators are left untouched;
//   - any other value becomes e.Equals(value).
//
// Preprocessing a canonical schema is a no-op.
func (e *Engine) Preprocess(schema Schema) error {
	for i := range schema {
		entry := &schema[i]

		if entry.IsBare() {
			name, ok := entry.Requirement.(string)
			if !ok || name == "" {
				return invalidSchemaf("bare entry at position %d must name a field, got %s", i, typeName(entry.Requirement))
			}
			entry.Key = name
			entry.Requirement = e.Exists()
			continue
		}

		req, err := e.canonicalize(entry.Key, entry.Requirement)
		if err != nil {
			return err
		}
		entry.Requirement = req
	}
	return nil
}

func (e *Engine) canonicalize(key string, req any) (any, error) {
	switch r := req.(type) {
	case *Validator:
		if r == nil {
			return nil, invalidSchemaf("nil validator for %q", key)
		}
		return r, nil
	case Schema:
		if err := e.Preprocess(r); err != nil {
			return nil, err
		}
		return r, nil
	case map[string]any:
		s := schemaFromMap(r)
		if err := e.Preprocess(s); err != nil {
			return nil, err
		}
		return s, nil
	case []string:
		s := Fields(r...)
		if err := e.Preprocess(s); err != nil {
			return nil, err
		}
		return s, nil
	case Predicate:
		return NewValidator(customValidatorName, SeverityError, r), nil
	case func(any) (Verdict, error):
		return NewValidator(customValidatorName, SeverityError, r), nil
	case func(any) bool:
		return NewValidator(customValidatorName, SeverityError, boolPredicate(r)), nil
	default:
		return e.Equals(req), nil
	}
}

// boolPredicate adapts a plain boolean check to a Predicate.
func boolPredicate(check func(any) bool) Predicate {
	return func(value any) (Verdict, error) {
		if check(value) {
			return Pass, nil
		}
		return Fail("expected " + customValidatorName + " to pass"), nil
	}
}
