// Package frontmatter splits a Markdown document into its YAML frontmatter
// and body. reqy uses it to validate the metadata of .md data files.
//
// The frontmatter must open on the first line with "---" and close with
// another "---" line; LF and CRLF endings are both accepted.
//
//	meta, body, err := frontmatter.Parse[map[string]any](r)
//	switch {
//	case errors.Is(err, frontmatter.ErrNoFrontmatter):
//		// plain Markdown
//	case err != nil:
//		return err
//	}
package frontmatter
