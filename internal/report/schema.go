package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/thoreinstein/reqy/pkg/reqy"
)

// SchemaNode is one entry of a canonical schema in display form. Leaves
// carry a validator, inner nodes carry fields.
type SchemaNode struct {
	Key       string       `json:"key"`
	Validator string       `json:"validator,omitempty"`
	Level     string       `json:"level,omitempty"`
	Fields    []SchemaNode `json:"fields,omitempty"`
}

// SchemaTree converts a preprocessed schema into display nodes in schema
// order. Entries that are not canonical are skipped.
func SchemaTree(schema reqy.Schema) []SchemaNode {
	nodes := make([]SchemaNode, 0, len(schema))
	for _, e := range schema {
		switch r := e.Requirement.(type) {
		case *reqy.Validator:
			nodes = append(nodes, SchemaNode{Key: e.Key, Validator: r.Name(), Level: r.Level().String()})
		case reqy.Schema:
			nodes = append(nodes, SchemaNode{Key: e.Key, Fields: SchemaTree(r)})
		}
	}
	return nodes
}

// WriteSchemaText writes the tree as indented "key: validator (LEVEL)"
// lines.
func WriteSchemaText(w io.Writer, nodes []SchemaNode) {
	writeNodes(w, nodes, 0)
}

func writeNodes(w io.Writer, nodes []SchemaNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		if n.Fields != nil {
			fmt.Fprintf(w, "%s%s:\n", indent, n.Key)
			writeNodes(w, n.Fields, depth+1)
			continue
		}
		fmt.Fprintf(w, "%s%s: %s (%s)\n", indent, n.Key, n.Validator, n.Level)
	}
}
