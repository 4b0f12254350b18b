package schemafile

import (
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/reqy/internal/datafile"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

// Modifier keys apply to the validator built by the other key in the
// mapping.
const (
	keyLevel      = "$level"
	keyPreprocess = "$preprocess"
	keyName       = "$name"
)

// builder creates a validator from the argument of its $key.
type builder func(c *Compiler, arg *yaml.Node) (*reqy.Validator, error)

var builders map[string]builder

func init() {
	builders = map[string]builder{
		"$exists":         flag((*reqy.Engine).Exists),
		"$notEmpty":       flag((*reqy.Engine).NotEmpty),
		"$even":           flag((*reqy.Engine).Even),
		"$odd":            flag((*reqy.Engine).Odd),
		"$equals":         buildEquals,
		"$in":             buildIn,
		"$range":          buildRange,
		"$length":         buildCount((*reqy.Engine).Length),
		"$lengthRange":    buildCountRange((*reqy.Engine).LengthRange, (*reqy.Engine).LengthAtLeast),
		"$wordCount":      buildCount((*reqy.Engine).WordCount),
		"$wordCountRange": buildCountRange((*reqy.Engine).WordCountRange, (*reqy.Engine).WordCountAtLeast),
		"$every":          buildEvery,
		"$expr":           buildExpr,
	}
}

// ValidatorKeys returns the recognised validator keys in sorted order.
func ValidatorKeys() []string {
	keys := make([]string, 0, len(builders))
	for k := range builders {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (c *Compiler) compileValidator(node *yaml.Node) (*reqy.Validator, error) {
	var (
		kind           string
		argNode        *yaml.Node
		levelNode      *yaml.Node
		preprocessNode *yaml.Node
		nameNode       *yaml.Node
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolveAlias(node.Content[i+1])
		switch {
		case !strings.HasPrefix(key.Value, "$"):
			return nil, schemaErr(key, "%q mixes a field with validator keys", key.Value)
		case key.Value == keyLevel:
			levelNode = value
		case key.Value == keyPreprocess:
			preprocessNode = value
		case key.Value == keyName:
			nameNode = value
		default:
			if _, ok := builders[key.Value]; !ok {
				return nil, schemaErr(key, "unknown validator %q", key.Value)
			}
			if kind != "" {
				return nil, schemaErr(key, "only one validator per field, found %s and %s", kind, key.Value)
			}
			kind, argNode = key.Value, value
		}
	}
	if kind == "" {
		return nil, schemaErr(node, "modifiers without a validator")
	}

	v, err := builders[kind](c, argNode)
	if err != nil {
		return nil, err
	}

	if levelNode != nil {
		level, err := reqy.ParseSeverity(levelNode.Value)
		if levelNode.Kind != yaml.ScalarNode || err != nil {
			return nil, schemaErr(levelNode, "$level must be error or warning")
		}
		v.WithLevel(level)
	}
	if nameNode != nil {
		if nameNode.Kind != yaml.ScalarNode || nameNode.Value == "" {
			return nil, schemaErr(nameNode, "$name must be a non-empty string")
		}
		v.WithName(nameNode.Value)
	}
	if preprocessNode != nil {
		pre, err := compilePreprocess(preprocessNode)
		if err != nil {
			return nil, err
		}
		v.WithPreprocess(pre)
	}
	return v, nil
}

func flag(factory func(*reqy.Engine) *reqy.Validator) builder {
	return func(c *Compiler, arg *yaml.Node) (*reqy.Validator, error) {
		var on bool
		if arg.Kind != yaml.ScalarNode || arg.Decode(&on) != nil || !on {
			return nil, schemaErr(arg, "expected true")
		}
		return factory(c.engine), nil
	}
}

func buildEquals(c *Compiler, arg *yaml.Node) (*reqy.Validator, error) {
	value, err := decodeValue(arg)
	if err != nil {
		return nil, err
	}
	return c.engine.Equals(value), nil
}

func buildIn(c *Compiler, arg *yaml.Node) (*reqy.Validator, error) {
	if arg.Kind != yaml.SequenceNode {
		return nil, schemaErr(arg, "$in expects a list of options")
	}
	options := make([]any, 0, len(arg.Content))
	for _, item := range arg.Content {
		value, err := decodeValue(resolveAlias(item))
		if err != nil {
			return nil, err
		}
		options = append(options, value)
	}
	return c.engine.In(options...), nil
}

func buildRange(c *Compiler, arg *yaml.Node) (*reqy.Validator, error) {
	if arg.Kind == yaml.ScalarNode {
		var lo float64
		if err := arg.Decode(&lo); err != nil {
			return nil, schemaErr(arg, "$range expects a number or [min, max]")
		}
		return c.engine.AtLeast(lo), nil
	}
	var bounds []float64
	if err := arg.Decode(&bounds); err != nil || len(bounds) != 2 {
		return nil, schemaErr(arg, "$range expects a number or [min, max]")
	}
	return c.engine.Range(bounds[0], bounds[1]), nil
}

func buildCount(factory func(*reqy.Engine, int) *reqy.Validator) builder {
	return func(c *Compiler, arg *yaml.Node) (*reqy.Validator, error) {
		var n int
		if arg.Kind != yaml.ScalarNode || arg.Decode(&n) != nil || n < 0 {
			return nil, schemaErr(arg, "expected a non-negative integer")
		}
		return factory(c.engine, n), nil
	}
}

func buildCountRange(between func(*reqy.Engine, int, int) *reqy.Validator, atLeast func(*reqy.Engine, int) *reqy.Validator) builder {
	return func(c *Compiler, arg *yaml.Node) (*reqy.Validator, error) {
		if arg.Kind == yaml.ScalarNode {
			var lo int
			if err := arg.Decode(&lo); err != nil {
				return nil, schemaErr(arg, "expected an integer or [min, max]")
			}
			return atLeast(c.engine, lo), nil
		}
		var bounds []int
		if err := arg.Decode(&bounds); err != nil || len(bounds) != 2 {
			return nil, schemaErr(arg, "expected an integer or [min, max]")
		}
		return between(c.engine, bounds[0], bounds[1]), nil
	}
}

func buildEvery(c *Compiler, arg *yaml.Node) (*reqy.Validator, error) {
	if arg.Kind != yaml.MappingNode || !hasDollarKey(arg) {
		return nil, schemaErr(arg, "$every expects a validator mapping")
	}
	inner, err := c.compileValidator(arg)
	if err != nil {
		return nil, err
	}
	return c.engine.Every(inner), nil
}

func buildExpr(c *Compiler, arg *yaml.Node) (*reqy.Validator, error) {
	if arg.Kind != yaml.ScalarNode || arg.Value == "" {
		return nil, schemaErr(arg, "$expr expects an expression string")
	}
	v, err := c.Expr(arg.Value)
	if err != nil {
		return nil, schemaErr(arg, "%v", err)
	}
	return v, nil
}

// decodeValue decodes a literal schema value into the shapes produced by the
// data loaders, so that literal and loaded values compare equal.
func decodeValue(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, schemaErr(node, "decoding value: %v", err)
	}
	return datafile.Normalize(v), nil
}
