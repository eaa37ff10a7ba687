package record

import (
	"fmt"
	"os"

	"ffc/zonectl/internal/dns/reconcile"
	"ffc/zonectl/internal/dns/tui"
	"ffc/zonectl/internal/util"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// BrowseCommand returns the "record browse" subcommand.
func BrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <zone>",
		Short: "Browse a zone's records interactively",
		Long: `Open an interactive browser over the zone's records. Each record shows
whether it matches the standard set; records can be inspected and
deleted from the browser.

Examples:
  zonectl record browse example.org`,
		Args: cobra.ExactArgs(1),
		RunE: runBrowse,
	}

	cmd.Flags().String("set", reconcile.DefaultStandardVersion, "Standard set version to compare against")

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	zoneName := args[0]
	if err := util.ValidateZoneName(zoneName); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("record browse needs an interactive terminal (use 'zonectl record list' in scripts)")
	}

	svc, err := newRecordService(cmd)
	if err != nil {
		return err
	}

	providerName := cmd.Flag("provider").Value.String()
	version, _ := cmd.Flags().GetString("set")

	if _, err := tui.RunBrowser(svc, providerName, zoneName, version); err != nil {
		return fmt.Errorf("failed to run record browser: %w", err)
	}
	return nil
}
