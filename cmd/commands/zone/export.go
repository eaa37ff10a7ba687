package zone

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"ffc/zonectl/internal/config"
	"ffc/zonectl/internal/dns/services"

	"github.com/spf13/cobra"
)

// ExportCommand returns the "zone export" subcommand.
func ExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [zone ...]",
		Short: "Export zone summaries as CSV",
		Long: `Read the named zones (or every zone in the account with --all) and write
one CSV row per zone to stdout. Zones are fetched with overlapping reads;
a zone that fails keeps its row, with the error in the last column, and
never stops the batch.

Formats:
  summary    apex addresses, www target, MX hosts, TXT count (default)
  apex-a     zone name and first apex A value only

Examples:
  zonectl zone export example.org example.net
  zonectl zone export --all --format apex-a > apex.csv`,
		RunE: runExport,
	}

	cmd.Flags().Bool("all", false, "Export every zone in the account")
	cmd.Flags().String("format", string(services.ExportFormatSummary), "Row format: summary or apex-a")
	cmd.Flags().Int("concurrency", 0, "Max overlapping zone reads (default from config, then 4)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	exportFormat, err := services.ParseExportFormat(format)
	if err != nil {
		return err
	}

	svc, err := newZoneService(cmd)
	if err != nil {
		return err
	}

	zones := args
	if all, _ := cmd.Flags().GetBool("all"); all {
		accountZones, err := svc.ListZones(cmd.Context())
		if err != nil {
			return err
		}
		zones = zones[:0]
		for _, z := range accountZones {
			zones = append(zones, z.Name)
		}
	}
	if len(zones) == 0 {
		return fmt.Errorf("no zones to export: name zones as arguments or pass --all")
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency == 0 {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		concurrency = cfg.ExportConcurrency
	}

	rows, err := svc.Export(cmd.Context(), zones, services.ExportOptions{Concurrency: concurrency})
	if err != nil {
		return err
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	if err := writeExportRows(w, exportFormat, rows); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	failed := 0
	for _, row := range rows {
		if row.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d zone(s) failed to export", failed, len(rows))
	}
	return nil
}

func writeExportRows(w *csv.Writer, format services.ExportFormat, rows []services.ExportRow) error {
	if format == services.ExportFormatApexA {
		if err := w.Write([]string{"zone", "apex_a"}); err != nil {
			return err
		}
		for _, row := range rows {
			if err := w.Write([]string{row.Zone, row.FirstApexA()}); err != nil {
				return err
			}
		}
		return nil
	}

	if err := w.Write([]string{"zone", "zone_id", "apex_a", "apex_aaaa", "www", "mx", "txt_count", "error"}); err != nil {
		return err
	}
	for _, row := range rows {
		errText := ""
		if row.Err != nil {
			errText = row.Err.Error()
		}
		record := []string{
			row.Zone,
			row.ZoneID,
			strings.Join(row.ApexA, " "),
			strings.Join(row.ApexAAAA, " "),
			row.WWW,
			strings.Join(row.MXHosts, " "),
			strconv.Itoa(row.TXTCount),
			errText,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
