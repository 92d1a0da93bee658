package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willabides/yamlgraph"
	"github.com/willabides/yamlgraph/internal/logging"
)

func newCheckCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check that YAML files load",
		Long: `Load every document of each file and report the first error in each.

With no files, or with "-", standard input is checked.

Examples:
  yamlgraph check config.yaml
  yamlgraph check a.yaml b.yaml
  cat config.yaml | yamlgraph check`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *globalFlags) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	logger := logging.FromContext(cmd.Context())
	loader := flags.loader(cmd)
	styles := flags.styles(cmd.OutOrStdout())

	failed := 0
	for _, path := range args {
		var docs yamlgraph.Documents
		var err error
		if path == "-" {
			docs, err = loader.LoadAll(cmd.InOrStdin())
		} else {
			docs, err = loader.LoadAllFromFile(path)
		}
		if err != nil {
			failed++
			var yerr *yamlgraph.Error
			if errors.As(err, &yerr) && yerr.HasMark() {
				continue
			}
			logger.Error("check failed", logging.FieldPath, path, logging.FieldError, err)
			continue
		}
		nodes := 0
		for _, doc := range docs {
			nodes += doc.Arena().Len()
		}
		logger.Debug("checked", logging.FieldPath, path, logging.FieldDocuments, len(docs), logging.FieldNodes, nodes)
		docs.Release()
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d documents)\n",
			styles.Success.Render("ok"), styles.Location.Render(path), len(docs))
		if err != nil {
			return err
		}
	}
	if failed > 0 {
		return ErrInvalidYAML
	}
	return nil
}
