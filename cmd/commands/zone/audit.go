package zone

import (
	"fmt"
	"text/tabwriter"

	"ffc/zonectl/internal/dns/reconcile"
	"ffc/zonectl/internal/util"

	"github.com/spf13/cobra"
)

// AuditCommand returns the "zone audit" subcommand.
func AuditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <zone>",
		Short: "Run read-only compliance checks against a zone",
		Long: `Check the zone's live records against the expected mail routing, SPF,
DMARC, and GitHub Pages configuration. Audit never mutates anything; it
exits nonzero when any check fails so it can gate CI.

Examples:
  zonectl zone audit example.org`,
		Args: cobra.ExactArgs(1),
		RunE: runAudit,
	}

	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	zoneName := args[0]
	if err := util.ValidateZoneName(zoneName); err != nil {
		return err
	}

	svc, err := newZoneService(cmd)
	if err != nil {
		return err
	}

	results, err := svc.Audit(cmd.Context(), zoneName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CHECK\tSTATUS\tDETAIL")
	fmt.Fprintln(w, "-----\t------\t------")

	failed := 0
	for _, res := range results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", res.Name, status, res.Detail)
	}
	w.Flush()

	if !reconcile.AuditPassed(results) {
		return fmt.Errorf("%s failed %d of %d checks", zoneName, failed, len(results))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s passed all %d checks\n", zoneName, len(results))
	return nil
}
