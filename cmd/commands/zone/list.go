package zone

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// ListCommand returns the "zone list" subcommand.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List zones in the provider account",
		Long: `List every zone the credential can see.

Examples:
  zonectl zone list
  zonectl zone list -o json`,
		Args: cobra.ExactArgs(0),
		RunE: runZoneList,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runZoneList(cmd *cobra.Command, args []string) error {
	svc, err := newZoneService(cmd)
	if err != nil {
		return err
	}

	zones, err := svc.ListZones(cmd.Context())
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("output")
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(zones)
	}

	if len(zones) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No zones found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tSTATUS\tCREATED")
	fmt.Fprintln(w, "----\t--\t------\t-------")
	for _, z := range zones {
		created := z.CreatedOn
		if t, err := time.Parse(time.RFC3339, z.CreatedOn); err == nil {
			created = humanize.Time(t)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", z.Name, z.ID, z.Status, created)
	}
	return w.Flush()
}
