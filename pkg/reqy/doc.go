// Package reqy validates structured data against declarative requirement
// schemas.
//
// A schema is an ordered tree of field keys bound to requirements. Leaves are
// [Validator] values: a name, a [Severity] and a [Predicate]. Validation walks
// the schema, resolves each field in the data and collects an [Issue] for
// every failed check. Issues are data, not errors; an error return means the
// schema or a validator was misused.
//
// # Basic Usage
//
//	schema := reqy.Schema{
//		reqy.Bare("name"),
//		reqy.Field("age", reqy.Range(0, 150)),
//		reqy.Field("status", "active"),
//		reqy.Field("job", reqy.Schema{
//			reqy.Field("title", reqy.WordCountRange(1, 5).WithLevel(reqy.SeverityWarning)),
//		}),
//	}
//
//	issues, err := reqy.Validate(data, schema)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range issues {
//		fmt.Println(issue)
//	}
//
// # Shorthands
//
// Schemas accept shorthand requirements that [Engine.Preprocess] rewrites in
// place into validators:
//
//   - [Bare] entries require the named field to exist;
//   - literal values require equality;
//   - raw predicates become a "custom validator" at [SeverityError].
//
// # Field Resolution
//
// Fields are looked up with a [Resolver]. The default chain honors
// [FieldResolver] implementations, then Get<Key> and <Key> accessor methods,
// then map keys, then exported struct fields and their json or yaml tags.
// Nested schemas address fields of the resolved value and report issues under
// dotted keys such as "job.title".
//
// # Error Handling
//
// Contract violations are marked with the sentinel errors
// [ErrInvalidArgument] and [ErrInvalidSchema] and can be checked using
// [errors.Is].
package reqy
