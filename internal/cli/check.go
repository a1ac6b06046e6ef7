package cli

import (
	"github.com/spf13/cobra"

	"github.com/sirkon/errsum/internal/generate"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Check generated files are up to date",
		Long: `Check reports errsum source files with diagnostics and generated files which are
missing or differ from what generate would write. Nothing is written.

Examples:
  # Check the whole module in CI
  errsum check ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.run(cmd, args, generate.ModeCheck)
			if err != nil {
				return err
			}

			okLabel.Fprintf(cmd.OutOrStdout(), "%d source file(s) up to date\n", res.Sources)
			return nil
		},
	}
}
