package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/util"

	"github.com/spf13/cobra"
)

// ListCommand returns the "record list" subcommand.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <zone>",
		Short: "List DNS records in a zone",
		Long: `List the zone's records, optionally filtered by type or name. A relative
--name is qualified against the zone.

Examples:
  zonectl record list example.org
  zonectl record list example.org --type TXT
  zonectl record list example.org --name www -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runList,
	}

	cmd.Flags().String("type", "", "Filter records by type (A, AAAA, CNAME, MX, TXT)")
	cmd.Flags().String("name", "", "Filter records by name (@ for the apex)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	zoneName := args[0]
	if err := util.ValidateZoneName(zoneName); err != nil {
		return err
	}

	typeFilter, _ := cmd.Flags().GetString("type")
	nameFilter, _ := cmd.Flags().GetString("name")

	svc, err := newRecordService(cmd)
	if err != nil {
		return err
	}

	filter := domain.RecordFilter{
		Type: domain.RecordType(strings.ToUpper(strings.TrimSpace(typeFilter))),
		Name: nameFilter,
	}
	records, err := svc.ListRecords(cmd.Context(), zoneName, filter)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("output")
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCONTENT\tTTL\tPRIORITY\tPROXIED")
	fmt.Fprintln(w, "--\t----\t----\t-------\t---\t--------\t-------")

	for _, r := range records {
		prio := ""
		if r.Type == domain.RecordTypeMX {
			prio = strconv.Itoa(r.Priority)
		}
		proxied := ""
		if r.Proxied {
			proxied = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Name, string(r.Type), r.Content, r.TTL, prio, proxied)
	}

	return w.Flush()
}
