package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/reqy/pkg/reqy"
)

func canonicalSchema(t *testing.T) reqy.Schema {
	t.Helper()
	schema := reqy.Schema{
		reqy.Field("name", "Ada"),
		reqy.Field("job", reqy.Fields("title")),
		reqy.Field("age", reqy.AtLeast(18).WithLevel(reqy.SeverityWarning)),
	}
	require.NoError(t, reqy.Preprocess(schema))
	return schema
}

func TestSchemaTree(t *testing.T) {
	want := []SchemaNode{
		{Key: "name", Validator: "equals", Level: "ERROR"},
		{Key: "job", Fields: []SchemaNode{
			{Key: "title", Validator: "exists", Level: "ERROR"},
		}},
		{Key: "age", Validator: "range", Level: "WARNING"},
	}
	if diff := cmp.Diff(want, SchemaTree(canonicalSchema(t))); diff != "" {
		t.Errorf("SchemaTree() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSchemaText(t *testing.T) {
	var buf bytes.Buffer
	WriteSchemaText(&buf, SchemaTree(canonicalSchema(t)))
	assert.Equal(t, "name: equals (ERROR)\njob:\n  title: exists (ERROR)\nage: range (WARNING)\n", buf.String())
}

func TestSchemaTree_JSON(t *testing.T) {
	data, err := json.Marshal(SchemaTree(canonicalSchema(t)))
	require.NoError(t, err)
	assert.Contains(t, string(data), `{"key":"age","validator":"range","level":"WARNING"}`)
	assert.Contains(t, string(data), `{"key":"job","fields":[`)
}
