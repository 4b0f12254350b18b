package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if ANSI colors should be written to w.
// REQY_FORCE_COLOR enables color for any writer; otherwise NO_COLOR,
// TERM=dumb and non-terminal writers disable it.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if v := os.Getenv("REQY_FORCE_COLOR"); v != "" && v != "0" {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}

// ConfigureColor turns fatih/color output on or off for reports written
// to w.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}
