package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/willabides/yamlgraph/internal/diag"
	"github.com/willabides/yamlgraph/internal/parser"
	"github.com/willabides/yamlgraph/internal/scanner"
	"github.com/willabides/yamlgraph/internal/termcolor"
	"github.com/willabides/yamlgraph/internal/yamlh"
)

func newTokensCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return runTokens(cmd, input, flags)
		},
	}
}

func runTokens(cmd *cobra.Command, input []byte, flags *globalFlags) error {
	out := cmd.OutOrStdout()
	styles := flags.styles(out)
	s, err := scanner.New(input, scanner.WithMaxDepth(flags.maxDepth))
	if err != nil {
		return report(cmd, flags, input, err)
	}
	for {
		tok, err := s.Next()
		if err != nil {
			return report(cmd, flags, s.Text(), err)
		}
		if _, err := fmt.Fprintf(out, "%s %s\n", location(styles, tok.Start), styles.Token.Render(tok.String())); err != nil {
			return err
		}
		if tok.Type == yamlh.STREAM_END_TOKEN {
			return nil
		}
	}
}

func newEventsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "events [file]",
		Short: "Print the structural events of a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return runEvents(cmd, input, flags)
		},
	}
}

func runEvents(cmd *cobra.Command, input []byte, flags *globalFlags) error {
	out := cmd.OutOrStdout()
	styles := flags.styles(out)
	p := parser.New(
		parser.WithPersistDirectives(flags.persistDirectives),
		parser.WithMaxDepth(flags.maxDepth),
	)
	if err := p.LoadBytes(input); err != nil {
		return report(cmd, flags, input, err)
	}
	for {
		rec := &yamlh.EventRecorder{}
		found, err := p.HandleNextDocument(rec)
		if err != nil {
			// print what the document produced before the error
			if werr := writeEvents(out, styles, rec.Events); werr != nil {
				return werr
			}
			return report(cmd, flags, p.Text(), err)
		}
		if !found {
			return nil
		}
		if err := writeEvents(out, styles, rec.Events); err != nil {
			return err
		}
	}
}

func writeEvents(w io.Writer, styles *termcolor.Styles, events []yamlh.Event) error {
	for _, ev := range events {
		var err error
		switch ev.Type {
		case yamlh.DOCUMENT_END_EVENT, yamlh.SEQUENCE_END_EVENT, yamlh.MAPPING_END_EVENT:
			_, err = fmt.Fprintf(w, "%s\n", styles.Token.Render(ev.String()))
		default:
			_, err = fmt.Fprintf(w, "%s %s\n", location(styles, ev.Mark), styles.Token.Render(ev.String()))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func location(styles *termcolor.Styles, mark yamlh.Mark) string {
	return styles.Location.Render(fmt.Sprintf("%d:%d", mark.Line+1, mark.Column+1))
}

// report writes the diagnostic for a positional error and returns
// ErrInvalidYAML. Other errors are returned as they are.
func report(cmd *cobra.Command, flags *globalFlags, text []byte, err error) error {
	var yerr *yamlh.Error
	if !errors.As(err, &yerr) || !yerr.HasMark() {
		return err
	}
	w := cmd.ErrOrStderr()
	opts := diag.Options{
		Width: termcolor.Width(w),
		Color: termcolor.Resolve(flags.colorMode()),
	}
	if rerr := diag.Render(w, text, yerr, opts); rerr != nil {
		return errors.Join(err, rerr)
	}
	return ErrInvalidYAML
}
