package history

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	historylog "ffc/zonectl/internal/history"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// ListCommand returns the "history list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently applied record mutations",
		Long: `List recently applied record mutations stored locally.

Examples:
  zonectl history list
  zonectl history list --limit 50
  zonectl history list --zone example.org
  zonectl history list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("zone", "", "Filter by zone name")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	zone, _ := cmd.Flags().GetString("zone")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}

	repo, err := historylog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []historylog.Entry
	if zone != "" {
		entries, err = repo.ListByZone(zone, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history entries found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tAGE\tCOMMAND\tZONE\tOPERATION\tOUTCOME\tDETAIL")
	fmt.Fprintln(w, "----\t---\t-------\t----\t---------\t-------\t------")
	for _, entry := range entries {
		timeStr := entry.Timestamp.Local().Format("2006-01-02 15:04:05")
		detail := entry.Detail
		if detail == "" {
			detail = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			timeStr,
			humanize.Time(entry.Timestamp),
			entry.Command,
			entry.Zone,
			formatOperation(entry),
			entry.Outcome,
			detail,
		)
	}
	w.Flush()
	return nil
}

func formatOperation(entry historylog.Entry) string {
	if entry.Op == "" && entry.RecordType == "" && entry.RecordName == "" {
		return "-"
	}

	op := entry.Op
	if entry.RecordType != "" {
		if op != "" {
			op += " " + entry.RecordType
		} else {
			op = entry.RecordType
		}
	}
	if entry.RecordName != "" {
		if op != "" {
			op += " " + entry.RecordName
		} else {
			op = entry.RecordName
		}
	}
	return op
}
