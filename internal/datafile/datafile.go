// Package datafile loads the documents that reqy validates.
package datafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/pkg/fileutil"
	"github.com/thoreinstein/reqy/pkg/frontmatter"
)

// Format identifies a data document encoding.
type Format string

// Supported formats. FormatAuto picks one from the file extension, or by
// sniffing the content for stdin.
const (
	FormatAuto     Format = ""
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
)

// BodyKey is the field under which a Markdown document's body is exposed,
// unless its frontmatter already defines that key.
const BodyKey = "body"

// Stdin is the path argument that reads the document from standard input.
const Stdin = "-"

// ParseFormat parses a --input-format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return FormatAuto, errors.Wrapf(errors.ErrUnsupportedFormat, "%q (valid: json, yaml, toml, markdown)", s)
}

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return FormatAuto, errors.WithHint(
			errors.Wrapf(errors.ErrUnsupportedFormat, "extension %q of %s", ext, path),
			"Pass --input-format json|yaml|toml|markdown")
	}
}

// Load reads and decodes the document at path. A path of "-" reads from
// stdin.
func Load(path string, format Format, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdin {
		data, err = fileutil.ReadAllWithLimit(stdin)
	} else {
		data, err = fileutil.ReadFileWithLimit(path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "reading %s", path), errors.ErrNotFound)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	if format == FormatAuto {
		if path == Stdin {
			format = sniff(data)
		} else if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return doc, nil
}

// sniff treats content that opens with '{' or '[' as JSON and anything
// else as YAML.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses data in the given format into plain Go values: maps are
// map[string]any, sequences []any, integral numbers int64 and other numbers
// float64.
func Decode(data []byte, format Format) (any, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "parsing YAML")
		}
		return Normalize(doc), nil
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "parsing TOML")
		}
		return Normalize(doc), nil
	case FormatMarkdown:
		return decodeMarkdown(data)
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%q", format)
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}
	if dec.More() {
		return nil, errors.New("parsing JSON: trailing data after document")
	}
	return Normalize(doc), nil
}

func decodeMarkdown(data []byte) (any, error) {
	matter, body, err := frontmatter.Parse[any](bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	doc, ok := Normalize(matter).(map[string]any)
	if !ok {
		if matter != nil {
			return nil, errors.Newf("frontmatter must be a mapping, got %T", matter)
		}
		doc = map[string]any{}
	}
	if _, exists := doc[BodyKey]; !exists {
		doc[BodyKey] = string(body)
	}
	return doc, nil
}

// Normalize converts decoder output into the value shapes reqy validators
// expect: string-keyed maps, []any sequences and int64/float64 numbers.
func Normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = Normalize(val)
		}
		return x
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = Normalize(val)
		}
		return m
	case []any:
		for i, val := range x {
			x[i] = Normalize(val)
		}
		return x
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Normalize(val)
		}
		return out
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return f
	case int:
		return int64(x)
	case uint64:
		if x <= 1<<63-1 {
			return int64(x)
		}
		return float64(x)
	default:
		return v
	}
}
