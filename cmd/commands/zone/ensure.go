package zone

import (
	"ffc/zonectl/internal/dns/reconcile"
	"ffc/zonectl/internal/util"

	"github.com/spf13/cobra"
)

// EnsureCommand returns the "zone ensure" subcommand.
func EnsureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensure <zone>",
		Short: "Converge a zone on the standard record set",
		Long: `Compare the zone's records against the standard set and plan the creates
and updates needed to converge. Records outside the standard set are left
alone.

There is no cross-run locking: two runs converging the same zone at once
can race on read-then-write. Serialize invocations per zone.

Examples:
  zonectl zone ensure example.org
  zonectl zone ensure example.org --apply
  zonectl zone ensure example.org --set ffc-2024 --apply`,
		Args: cobra.ExactArgs(1),
		RunE: runEnsure,
	}

	cmd.Flags().String("set", reconcile.DefaultStandardVersion, "Standard set version to enforce")
	cmd.Flags().Bool("apply", false, "Apply the planned operations (default is dry-run)")

	return cmd
}

func runEnsure(cmd *cobra.Command, args []string) error {
	zoneName := args[0]
	if err := util.ValidateZoneName(zoneName); err != nil {
		return err
	}

	svc, err := newZoneService(cmd)
	if err != nil {
		return err
	}

	version, _ := cmd.Flags().GetString("set")
	mode := resolveMode(cmd)

	report, execErr := svc.EnsureStandard(cmd.Context(), zoneName, version, mode)
	if report != nil {
		printReport(cmd, report)
		recordHistory(cmd, "zone ensure", report)
	}
	return execErr
}
