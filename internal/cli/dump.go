package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/willabides/yamlgraph"
)

func newDumpCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "Load a YAML file and write it back out",
		Long: `Load every document of a YAML file and write them back out in a
normalized layout. Shared nodes are written once with an anchor and
referenced by alias afterwards, so cyclic documents round-trip.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := flags.loader(cmd)
			var docs yamlgraph.Documents
			var err error
			if len(args) == 0 || args[0] == "-" {
				docs, err = loader.LoadAll(cmd.InOrStdin())
			} else {
				docs, err = loader.LoadAllFromFile(args[0])
			}
			if err != nil {
				var yerr *yamlgraph.Error
				if errors.As(err, &yerr) && yerr.HasMark() {
					return ErrInvalidYAML
				}
				return err
			}
			defer docs.Release()
			return yamlgraph.Encode(cmd.OutOrStdout(), docs...)
		},
	}
}
