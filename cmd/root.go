package cmd

import (
	"errors"
	"os"

	"ffc/zonectl/cmd/commands/auth"
	cfgcmd "ffc/zonectl/cmd/commands/config"
	"ffc/zonectl/cmd/commands/history"
	"ffc/zonectl/cmd/commands/record"
	"ffc/zonectl/cmd/commands/zone"
	dnsproviders "ffc/zonectl/internal/dns/providers"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "zonectl",
		Short: "Reconcile DNS zones against a standard record set",
		Long: `zonectl keeps an organisation's DNS zones converged on a standard record
set: Microsoft 365 mail routing, SPF and DMARC policy, and a GitHub Pages
apex. Every mutating command plans first and prints the operations it
would issue; nothing changes until you pass --apply.

Quick start:
  zonectl auth login cloudflare      # Store your API token
  zonectl zone ensure example.org    # Preview drift against the standard set
  zonectl zone ensure example.org --apply
  zonectl zone audit example.org     # Read-only compliance checks
  zonectl record browse example.org  # Interactive record browser`,
		SilenceUsage: true,
	}

	cmd.AddCommand(zone.NewCommand())
	cmd.AddCommand(record.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(history.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). Errors that carry an
// exit code (missing credentials, bad config) surface it so scripts can
// tell setup problems apart from reconciliation failures.
func Execute() {
	dnsproviders.RegisterCloudflare()

	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		var coded interface{ ExitCode() int }
		if errors.As(err, &coded) {
			os.Exit(coded.ExitCode())
		}
		os.Exit(1)
	}
}
