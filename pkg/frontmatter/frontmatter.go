package frontmatter

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/reqy/internal/errors"
)

// Sentinel errors returned by Parse.
var (
	// ErrNoFrontmatter indicates the document does not start with "---".
	ErrNoFrontmatter = errors.New("no frontmatter found")

	// ErrUnclosed indicates the opening delimiter has no matching close.
	ErrUnclosed = errors.New("missing closing frontmatter delimiter")

	// ErrInvalidYAML indicates the frontmatter is not valid YAML.
	ErrInvalidYAML = errors.New("invalid YAML in frontmatter")
)

// Parse reads a Markdown document and unmarshals its frontmatter into T.
// The body after the closing delimiter is returned verbatim.
func Parse[T any](r io.Reader) (T, []byte, error) {
	var matter T

	content, err := io.ReadAll(r)
	if err != nil {
		return matter, nil, errors.Wrap(err, "reading document")
	}
	raw, body, err := split(content)
	if err != nil {
		return matter, nil, err
	}
	if err := yaml.Unmarshal(raw, &matter); err != nil {
		return matter, nil, errors.Mark(errors.Wrap(err, "parsing frontmatter"), ErrInvalidYAML)
	}
	return matter, body, nil
}

// split separates the YAML between the "---" delimiters from the body.
// LF and CRLF line endings are both accepted.
func split(content []byte) (matter, body []byte, err error) {
	var rest []byte
	switch {
	case bytes.HasPrefix(content, []byte("---\n")):
		rest = content[4:]
	case bytes.HasPrefix(content, []byte("---\r\n")):
		rest = content[5:]
	default:
		return nil, nil, ErrNoFrontmatter
	}

	for offset := 0; offset <= len(rest); {
		line, next, ok := bytes.Cut(rest[offset:], []byte("\n"))
		if string(bytes.TrimRight(line, "\r")) == "---" {
			matter = rest[:offset]
			if ok {
				body = next
			}
			return matter, body, nil
		}
		if !ok {
			break
		}
		offset += len(line) + 1
	}
	return nil, nil, ErrUnclosed
}
