// Package main is the entry point for the yamlgraph CLI.
package main

import (
	"errors"
	"os"

	"github.com/willabides/yamlgraph/internal/cli"
	"github.com/willabides/yamlgraph/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Diagnostics for bad input were already written.
		if !errors.Is(err, cli.ErrInvalidYAML) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return 1
	}

	return 0
}
