package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridwell/listbind/internal/scenario"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario file against the schema",
		Long: `Validate a scenario file against the embedded CUE schema without
running it.

Example:
  listbind validate demo.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "validation failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d seed records, %d steps)\n",
				sc.Name, len(sc.Seed), len(sc.Steps))
			return nil
		},
	}
	return cmd
}
