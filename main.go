// Package main implements the main entry point of the SNES routine control flow analyzer
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/snescfa/internal/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	build := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if err := cli.Execute(ctx, build, os.Args[1:]); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Operation cancelled")
			return
		}
		os.Exit(1)
	}
}
