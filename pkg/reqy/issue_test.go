package reqy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_String(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "key and string value",
			issue: NewIssue(SeverityError, "equals", "expected <barz>, but got <bar>").WithKey("foo").WithValue("bar"),
			want:  "[ERROR] key=foo value=bar equals: expected <barz>, but got <bar>",
		},
		{
			name:  "numeric value",
			issue: NewIssue(SeverityWarning, "odd", "expected 50 to be odd").WithKey("n").WithValue(50),
			want:  "[WARNING] key=n value=50 odd: expected 50 to be odd",
		},
		{
			name:  "list value is JSON",
			issue: NewIssue(SeverityError, "length", "expected length to be 1, but got 2").WithKey("tags").WithValue([]any{"a", "b"}),
			want:  `[ERROR] key=tags value=["a","b"] length: expected length to be 1, but got 2`,
		},
		{
			name:  "nil value is rendered",
			issue: NewIssue(SeverityError, "not empty", "expected field to be non-empty").WithKey("x").WithValue(nil),
			want:  "[ERROR] key=x value=null not empty: expected field to be non-empty",
		},
		{
			name:  "no key no value",
			issue: NewIssue(SeverityWarning, "custom validator", "expected custom validator to pass"),
			want:  "[WARNING] custom validator: expected custom validator to pass",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestIssue_JSON(t *testing.T) {
	issue := NewIssue(SeverityError, "equals", "expected <b>, but got <a>").WithKey("job.title").WithValue("a")

	data, err := json.Marshal(issue)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"level": "ERROR",
		"key": "job.title",
		"validationName": "equals",
		"details": "expected <b>, but got <a>",
		"value": "a"
	}`, string(data))

	var back Issue
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, issue, back)
}

func TestIssue_JSONWithoutValue(t *testing.T) {
	issue := NewIssue(SeverityWarning, "exists", "expected field to exist")

	data, err := json.Marshal(issue)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"WARNING","validationName":"exists","details":"expected field to exist"}`, string(data))

	var back Issue
	require.NoError(t, json.Unmarshal(data, &back))
	assert.False(t, back.HasValue)
	assert.Equal(t, SeverityWarning, back.Level)
}

func TestIssues_Helpers(t *testing.T) {
	var is Issues
	assert.False(t, is.HasErrors())
	assert.False(t, is.HasWarnings())
	assert.Nil(t, is.Strings())

	is = Issues{
		NewIssue(SeverityError, "exists", "e1").WithKey("a"),
		NewIssue(SeverityWarning, "length", "w1").WithKey("b"),
		NewIssue(SeverityError, "range", "e2").WithKey("a"),
	}

	assert.True(t, is.HasErrors())
	assert.True(t, is.HasWarnings())
	assert.Len(t, is.Errors(), 2)
	assert.Len(t, is.Warnings(), 1)
	assert.Len(t, is.AtLeast(SeverityError), 2)
	assert.Len(t, is.AtLeast(SeverityWarning), 3)
	assert.Len(t, is.ForKey("a"), 2)
	assert.Equal(t, []string{"a", "b"}, is.Keys())
	assert.Equal(t, "[ERROR] key=a exists: e1", is.Strings()[0])
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string verbatim", "<b>&</b>", "<b>&</b>"},
		{"list without html escaping", []any{"a<b", 1}, `["a<b",1]`},
		{"map", map[string]any{"k": "x&y"}, `{"k":"x&y"}`},
		{"nil", nil, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}

	issue := NewIssue(SeverityError, "in", "x").WithKey("tags").WithValue([]any{"<b>"})
	assert.Equal(t, `[ERROR] key=tags value=["<b>"] in: x`, issue.String())
}
