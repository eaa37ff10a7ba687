package history

import "github.com/spf13/cobra"

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage recorded mutations",
		Long: "View the local history of applied record mutations and prune old entries.\n\n" +
			"History is stored locally in ~/.config/zonectl/zonectl.db. Only applied\n" +
			"operations are recorded; dry runs leave no trace.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
