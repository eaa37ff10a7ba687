package config

import (
	"fmt"

	"ffc/zonectl/internal/config"

	"github.com/spf13/cobra"
)

// PathCommand returns the "config path" command.
func PathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "path",
		Short:        "Print the config file location",
		Args:         cobra.ExactArgs(0),
		RunE:         runPath,
		SilenceUsage: true,
	}

	return cmd
}

func runPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
