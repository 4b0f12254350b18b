package commands

import (
	"fmt"
	"io"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/internal/report"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

// browseIssues lets the user pick an issue in a fuzzy finder and prints the
// selected one in full.
func browseIssues(w io.Writer, rep *report.Report) error {
	issues := rep.Issues
	idx, err := fuzzyfinder.Find(
		issues,
		func(i int) string {
			return issueLabel(issues[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return issuePreview(issues[i])
		}),
		fuzzyfinder.WithHeader(fmt.Sprintf("%d issue(s) in %s", len(issues), rep.Data)),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive browse failed")
	}

	fmt.Fprintln(w, issues[idx].String())
	return nil
}

func issueLabel(i reqy.Issue) string {
	key := i.Key
	if key == "" {
		key = "(root)"
	}
	return fmt.Sprintf("%s %s: %s", i.Level, key, i.ValidationName)
}

func issuePreview(i reqy.Issue) string {
	preview := fmt.Sprintf("Level: %s\nKey: %s\nValidation: %s\n", i.Level, i.Key, i.ValidationName)
	if i.HasValue {
		preview += fmt.Sprintf("Value: %v\n", i.Value)
	}
	return preview + "\nDetails:\n" + i.Details
}
