package cli

import (
	"github.com/spf13/cobra"

	"github.com/sirkon/errsum/internal/generate"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [patterns...]",
		Short: "Generate files for errsum sources",
		Long: `Generate writes the generated counterpart of every errsum source file found.

Patterns are files, directories and dir/... for a directory with all its
subdirectories. The current directory is used when no pattern is given.
Files with diagnostics produce no output.

Examples:
  # Generate files in the current directory
  errsum generate

  # Generate files in the whole module
  errsum generate ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.run(cmd, args, generate.ModeWrite)
			if err != nil {
				return err
			}

			okLabel.Fprintf(cmd.OutOrStdout(), "%d source file(s), %d written\n", res.Sources, res.Written)
			return nil
		},
	}
}
