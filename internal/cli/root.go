// Package cli provides the Cobra command structure for yamlgraph.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/willabides/yamlgraph"
	"github.com/willabides/yamlgraph/internal/logging"
	"github.com/willabides/yamlgraph/internal/termcolor"
)

// ErrInvalidYAML is returned after the diagnostics for bad input have been
// written. It only signals the exit code.
var ErrInvalidYAML = errors.New("invalid YAML")

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type globalFlags struct {
	debug             bool
	color             string
	persistDirectives bool
	maxDepth          int
}

// NewRootCommand creates the root yamlgraph command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "yamlgraph",
		Short: "Parse YAML into node graphs",
		Long: `yamlgraph parses YAML streams into graphs of nodes, where aliases are
shared references to their anchored node rather than copies.

The subcommands expose each stage of the pipeline: the token stream, the
structural events, and the loaded documents.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := termcolor.ParseMode(flags.color); err != nil {
				return err
			}
			level := "info"
			if flags.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flags.persistDirectives, "persist-directives", false,
		"keep %YAML and %TAG directives in effect for later documents")
	rootCmd.PersistentFlags().IntVar(&flags.maxDepth, "max-depth", 0,
		"maximum collection nesting (0 for the default of 10000)")

	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newTokensCommand(flags))
	rootCmd.AddCommand(newEventsCommand(flags))
	rootCmd.AddCommand(newDumpCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

func (f *globalFlags) colorMode() termcolor.Mode {
	mode, err := termcolor.ParseMode(f.color)
	if err != nil {
		return termcolor.Auto
	}
	return mode
}

func (f *globalFlags) styles(w io.Writer) *termcolor.Styles {
	return termcolor.NewStyles(w, termcolor.Resolve(f.colorMode()))
}

// loader returns a managed loader that writes diagnostics to the command's
// stderr.
func (f *globalFlags) loader(cmd *cobra.Command) *yamlgraph.Loader {
	return yamlgraph.NewLoader(
		yamlgraph.WithManaged(true),
		yamlgraph.WithDiagnosticWriter(cmd.ErrOrStderr()),
		yamlgraph.WithColor(f.colorMode()),
		yamlgraph.WithLogger(logging.FromContext(cmd.Context())),
		yamlgraph.WithPersistentDirectives(f.persistDirectives),
		yamlgraph.WithMaxDepth(f.maxDepth),
	)
}

// readInput returns the contents of the named file, or of stdin for "-" or
// no name.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return input, nil
	}
	input, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return input, nil
}
