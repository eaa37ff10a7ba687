package zone

import (
	"fmt"

	"ffc/zonectl/internal/dns/reconcile"

	"github.com/spf13/cobra"
)

// printReport renders a reconciliation report: one line per operation
// with its status, then the one-line summary. Warnings go to stderr so
// piped output stays clean.
func printReport(cmd *cobra.Command, report *reconcile.Report) {
	for _, w := range report.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	out := cmd.OutOrStdout()
	for _, res := range report.Results {
		line := res.Op.Describe()
		if res.Op.Rationale != "" {
			line = fmt.Sprintf("%s (%s)", line, res.Op.Rationale)
		}
		if res.Err != nil {
			line = fmt.Sprintf("%s: %v", line, res.Err)
		}
		fmt.Fprintf(out, "  %-8s %s\n", res.Status, line)
	}

	fmt.Fprintln(out, report.Summary())
}
