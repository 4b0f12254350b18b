package schemafile

import (
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/reqy/pkg/reqy"
)

// transforms are the named string preprocessors. Non-string values pass
// through unchanged.
var transforms = map[string]func(string) string{
	"trim":  strings.TrimSpace,
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"strip-spaces": func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	},
}

// compilePreprocess builds a preprocessor from a transform name or a list of
// names applied in order.
func compilePreprocess(node *yaml.Node) (reqy.Preprocessor, error) {
	var names []string
	switch node.Kind {
	case yaml.ScalarNode:
		names = []string{node.Value}
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return nil, schemaErr(node, "$preprocess expects a name or a list of names")
		}
	default:
		return nil, schemaErr(node, "$preprocess expects a name or a list of names")
	}

	steps := make([]func(string) string, 0, len(names))
	for _, name := range names {
		fn, ok := transforms[name]
		if !ok {
			return nil, schemaErr(node, "unknown preprocessor %q (valid: %s)", name, strings.Join(transformNames(), ", "))
		}
		steps = append(steps, fn)
	}

	return func(value any) any {
		s, ok := value.(string)
		if !ok {
			return value
		}
		for _, step := range steps {
			s = step(s)
		}
		return s
	}, nil
}

func transformNames() []string {
	names := make([]string, 0, len(transforms))
	for name := range transforms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
