package reqy

import (
	"encoding/json"
	"strings"
)

// Issue records one failed check.
type Issue struct {
	// Level is the severity of the validator that failed.
	Level Severity
	// Key is the dotted path of the field, e.g. "job.title". Empty when the
	// issue was not produced by schema traversal.
	Key string
	// ValidationName is the name of the validator that failed.
	ValidationName string
	// Details is the failure description returned by the predicate.
	Details string
	// Value is the offending value. Only meaningful when HasValue is set.
	Value any
	// HasValue distinguishes an attached nil value from no value at all.
	HasValue bool
}

// NewIssue creates an Issue without a key or value.
func NewIssue(level Severity, validationName, details string) Issue {
	return Issue{
		Level:          level,
		ValidationName: validationName,
		Details:        details,
	}
}

// WithKey returns a copy of the issue with its key set.
func (i Issue) WithKey(key string) Issue {
	i.Key = key
	return i
}

// WithValue returns a copy of the issue with the offending value attached.
func (i Issue) WithValue(value any) Issue {
	i.Value = value
	i.HasValue = true
	return i
}

// String renders the issue as
//
//	[LEVEL] key=<key> value=<value> <validationName>: <details>
//
// The key and value segments are omitted when absent. String values are
// written verbatim, all other values as JSON.
func (i Issue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(i.Level.String())
	sb.WriteString("] ")
	if i.Key != "" {
		sb.WriteString("key=")
		sb.WriteString(i.Key)
		sb.WriteString(" ")
	}
	if i.HasValue {
		sb.WriteString("value=")
		sb.WriteString(FormatValue(i.Value))
		sb.WriteString(" ")
	}
	sb.WriteString(i.ValidationName)
	sb.WriteString(": ")
	sb.WriteString(i.Details)
	return sb.String()
}

// FormatValue renders an issue value for people: strings verbatim and
// everything else as JSON without HTML escaping.
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	out, err := humanJSON(v)
	if err != nil {
		return render(v)
	}
	return out
}

// issueJSON is the structured form of an Issue.
type issueJSON struct {
	Level          Severity `json:"level"`
	Key            string   `json:"key,omitempty"`
	ValidationName string   `json:"validationName"`
	Details        string   `json:"details"`
	Value          *any     `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler. The level is written by name and
// the key and value are omitted when absent.
func (i Issue) MarshalJSON() ([]byte, error) {
	out := issueJSON{
		Level:          i.Level,
		Key:            i.Key,
		ValidationName: i.ValidationName,
		Details:        i.Details,
	}
	if i.HasValue {
		v := i.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var raw struct {
		issueJSON
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = Issue{
		Level:          raw.Level,
		Key:            raw.Key,
		ValidationName: raw.ValidationName,
		Details:        raw.Details,
	}
	if len(raw.Value) > 0 {
		var v any
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return err
		}
		i.Value = v
		i.HasValue = true
	}
	return nil
}

// Issues is an ordered list of issues as produced by Validate.
type Issues []Issue

// HasErrors returns true if any issue has SeverityError.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Level == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has SeverityWarning.
func (is Issues) HasWarnings() bool {
	for _, i := range is {
		if i.Level == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns the issues with SeverityError.
func (is Issues) Errors() Issues {
	return is.filter(func(i Issue) bool { return i.Level == SeverityError })
}

// Warnings returns the issues with SeverityWarning.
func (is Issues) Warnings() Issues {
	return is.filter(func(i Issue) bool { return i.Level == SeverityWarning })
}

// AtLeast returns the issues whose severity is at least as severe as level.
// SeverityError is the most severe level.
func (is Issues) AtLeast(level Severity) Issues {
	if level == SeverityWarning {
		return is.filter(func(Issue) bool { return true })
	}
	return is.Errors()
}

// ForKey returns the issues reported for the given dotted key.
func (is Issues) ForKey(key string) Issues {
	return is.filter(func(i Issue) bool { return i.Key == key })
}

// Keys returns the distinct keys in first-seen order.
func (is Issues) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, i := range is {
		if !seen[i.Key] {
			keys = append(keys, i.Key)
			seen[i.Key] = true
		}
	}
	return keys
}

// Strings renders every issue with Issue.String.
func (is Issues) Strings() []string {
	if len(is) == 0 {
		return nil
	}
	out := make([]string, len(is))
	for n, i := range is {
		out[n] = i.String()
	}
	return out
}

func (is Issues) filter(keep func(Issue) bool) Issues {
	var res Issues
	for _, i := range is {
		if keep(i) {
			res = append(res, i)
		}
	}
	return res
}
