// Package schemafile compiles declarative schema documents into reqy
// schemas.
//
// A schema document is YAML, JSON or TOML. Each value in it is one of:
//
//	name: Ada                 # literal: the field must equal it
//	job: [title, company]     # list: the nested fields must exist
//	age: {$range: [0, 150]}   # $-mapping: a single validator
//	address:                  # any other mapping: a nested schema
//	  city: {$notEmpty: true}
//
// The top level is a mapping, or a list of required field names.
package schemafile

import (
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/internal/translate"
	"github.com/thoreinstein/reqy/pkg/fileutil"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

// Compiler turns schema documents into reqy schemas whose validators are
// built by an Engine, so they carry its default level.
type Compiler struct {
	engine *reqy.Engine
	exprs  *exprEnv
}

// NewCompiler creates a Compiler for engine.
func NewCompiler(engine *reqy.Engine) (*Compiler, error) {
	exprs, err := newExprEnv()
	if err != nil {
		return nil, err
	}
	return &Compiler{engine: engine, exprs: exprs}, nil
}

// CompileFile reads and compiles the schema document at path. The format
// is chosen by extension: .toml is TOML, anything else is parsed as YAML,
// which includes JSON.
func (c *Compiler) CompileFile(path string) (reqy.Schema, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading schema %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if data, err = translate.TOMLToYAML(data); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "schema %s", path), reqy.ErrInvalidSchema)
		}
	}
	schema, err := c.Compile(data)
	if err != nil {
		return nil, errors.Wrapf(err, "schema %s", path)
	}
	return schema, nil
}

// Compile compiles a YAML or JSON schema document. Entries keep document
// order.
func (c *Compiler) Compile(data []byte) (reqy.Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing schema"), reqy.ErrInvalidSchema)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, errors.Mark(errors.New("empty schema document"), reqy.ErrInvalidSchema)
	}

	root := resolveAlias(doc.Content[0])
	switch root.Kind {
	case yaml.MappingNode:
		if hasDollarKey(root) {
			return nil, schemaErr(root, "top level must name fields, not a validator")
		}
		return c.compileMapping(root)
	case yaml.SequenceNode:
		return c.compileFieldList(root)
	default:
		return nil, schemaErr(root, "top level must be a mapping or a list of field names")
	}
}

func (c *Compiler) compileMapping(node *yaml.Node) (reqy.Schema, error) {
	schema := make(reqy.Schema, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], resolveAlias(node.Content[i+1])
		if keyNode.Kind != yaml.ScalarNode || keyNode.Value == "" {
			return nil, schemaErr(keyNode, "field names must be non-empty strings")
		}
		req, err := c.compileValue(valueNode)
		if err != nil {
			return nil, err
		}
		schema = append(schema, reqy.Field(keyNode.Value, req))
	}
	return schema, nil
}

func (c *Compiler) compileFieldList(node *yaml.Node) (reqy.Schema, error) {
	names := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.ScalarNode || item.Tag != "!!str" || item.Value == "" {
			return nil, schemaErr(item, "lists in a schema must contain field names")
		}
		names = append(names, item.Value)
	}
	return reqy.Fields(names...), nil
}

func (c *Compiler) compileValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return decodeValue(node)
	case yaml.SequenceNode:
		return c.compileFieldList(node)
	case yaml.MappingNode:
		if !hasDollarKey(node) {
			return c.compileMapping(node)
		}
		return c.compileValidator(node)
	default:
		return nil, schemaErr(node, "unsupported schema value")
	}
}

func hasDollarKey(node *yaml.Node) bool {
	for i := 0; i < len(node.Content); i += 2 {
		if strings.HasPrefix(node.Content[i].Value, "$") {
			return true
		}
	}
	return false
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// schemaErr reports a problem at node's position in the document.
func schemaErr(node *yaml.Node, format string, args ...any) error {
	err := errors.Newf(format, args...)
	if node != nil && node.Line > 0 {
		err = errors.Wrapf(err, "line %d", node.Line)
	}
	return errors.Mark(err, reqy.ErrInvalidSchema)
}
