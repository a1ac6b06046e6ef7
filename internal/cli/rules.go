package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirkon/errsum/internal/errsumrules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List diagnostics errsum reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, r := range errsumrules.All() {
				ruleLabel.Fprint(w, r)
				_, _ = fmt.Fprintf(w, "\n\t%s\n", r.Description())
			}
			return nil
		},
	}
}
