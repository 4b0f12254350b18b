// Package main is the entry point for the reqy CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/reqy/cmd/reqy/commands"
	"github.com/thoreinstein/reqy/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil && !errors.Is(err, errors.ErrValidationFailed) {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		if s := errors.Suggestion(err); s != "" {
			fmt.Fprintln(os.Stderr, s)
		}
	}
	os.Exit(errors.ExitCode(err))
}
