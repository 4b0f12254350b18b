// Package editor launches the user's text editor on schema and config files.
package editor

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/reqy/internal/errors"
)

// Open runs the user's editor on path and waits for it to exit. The editor
// command may carry arguments, as in EDITOR="code --wait".
func Open(ctx context.Context, path string) error {
	argv := strings.Fields(Command())
	if len(argv) == 0 {
		return errors.New("no editor configured")
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.WithHint(errors.Wrapf(err, "running editor %s", argv[0]),
			"Set REQY_EDITOR or EDITOR to an installed editor")
	}
	return nil
}

// Command returns the editor command line. Lookup order: $REQY_EDITOR,
// $EDITOR, $VISUAL, nano, vi. Empty variables count as unset.
func Command() string {
	for _, env := range []string{"REQY_EDITOR", "EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
