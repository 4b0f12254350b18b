package datafile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/pkg/fileutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDecode(t *testing.T) {
	want := map[string]any{
		"name": "Ada",
		"age":  int64(36),
		"rate": 1.5,
		"tags": []any{"math", "code"},
		"job":  map[string]any{"canHeFixIt": "yes"},
	}

	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{
			name:   "json",
			format: FormatJSON,
			input:  `{"name":"Ada","age":36,"rate":1.5,"tags":["math","code"],"job":{"canHeFixIt":"yes"}}`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			input:  "name: Ada\nage: 36\nrate: 1.5\ntags: [math, code]\njob:\n  canHeFixIt: \"yes\"\n",
		},
		{
			name:   "toml",
			format: FormatTOML,
			input:  "name = \"Ada\"\nage = 36\nrate = 1.5\ntags = [\"math\", \"code\"]\n[job]\ncanHeFixIt = \"yes\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecode_Markdown(t *testing.T) {
	got, err := Decode([]byte("---\ntitle: Hello\ndraft: false\n---\nBody text\n"), FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Hello", "draft": false, "body": "Body text\n"}, got)

	got, err = Decode([]byte("---\nbody: kept\n---\nignored\n"), FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"body": "kept"}, got)

	got, err = Decode([]byte("---\n---\ntext"), FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"body": "text"}, got)

	_, err = Decode([]byte("---\n- a\n---\n"), FormatMarkdown)
	assert.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"bad json", FormatJSON, `{"a":`},
		{"trailing json", FormatJSON, `{"a":1} {"b":2}`},
		{"bad yaml", FormatYAML, "a: [1"},
		{"bad toml", FormatTOML, "a = "},
		{"unknown format", Format("ini"), "a=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestJSONNumbers(t *testing.T) {
	got, err := Decode([]byte(`[1, 1.0, 2.5, 12345678901234567890]`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), 1.0, 2.5, 1.2345678901234567e19}, got)
}

func TestNormalize_NonStringKeys(t *testing.T) {
	got, err := Decode([]byte("1: one\ntrue: yes\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"1": "one", "true": "yes"}, got)
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "person.yml", "name: Ada\n")

	got, err := Load(path, FormatAuto, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada"}, got)

	got, err = Load(Stdin, FormatAuto, strings.NewReader(`{"n": 1}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": int64(1)}, got)

	got, err = Load(Stdin, FormatAuto, strings.NewReader("n: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": int64(1)}, got)

	got, err = Load(writeFile(t, "data.txt", `{"n": 2}`), FormatJSON, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": int64(2)}, got)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), FormatAuto, nil)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = Load(writeFile(t, "data.ini", "a=1"), FormatAuto, nil)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
	assert.NotEmpty(t, errors.Suggestion(err))

	_, err = Load(Stdin, FormatJSON, strings.NewReader(strings.Repeat(" ", fileutil.MaxFileSize+1)))
	assert.True(t, errors.Is(err, fileutil.ErrFileTooLarge))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatAuto,
		"auto":     FormatAuto,
		"JSON":     FormatJSON,
		"yml":      FormatYAML,
		"toml":     FormatTOML,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
}
