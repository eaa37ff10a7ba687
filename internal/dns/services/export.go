package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"ffc/zonectl/internal/dns/domain"
)

// DefaultExportConcurrency bounds how many zones are read at once during
// a batch export.
const DefaultExportConcurrency = 4

// ExportFormat selects the shape of export rows.
type ExportFormat string

const (
	// ExportFormatSummary emits one row per zone with apex addresses,
	// www target, MX hosts, and TXT count.
	ExportFormatSummary ExportFormat = "summary"

	// ExportFormatApexA emits one row per zone with the first apex A
	// value only.
	ExportFormatApexA ExportFormat = "apex-a"
)

// ParseExportFormat validates a format string from the command line.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case ExportFormatSummary, ExportFormat(""):
		return ExportFormatSummary, nil
	case ExportFormatApexA:
		return ExportFormatApexA, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q (want %s or %s)",
		domain.ErrValidation, s, ExportFormatSummary, ExportFormatApexA)
}

// ExportRow is one zone's summary in a batch export. When Err is set the
// remaining fields are empty; the row still occupies the zone's position
// in the output.
type ExportRow struct {
	Zone     string
	ZoneID   string
	ApexA    []string
	ApexAAAA []string
	WWW      string
	MXHosts  []string
	TXTCount int
	Err      error
}

// FirstApexA returns the zone's first apex A value, or empty.
func (r ExportRow) FirstApexA() string {
	if len(r.ApexA) == 0 {
		return ""
	}
	return r.ApexA[0]
}

// ExportOptions configures a batch export.
type ExportOptions struct {
	// Concurrency bounds overlapping zone reads. Zero or negative means
	// DefaultExportConcurrency.
	Concurrency int
}

// Export reads the given zones and builds one summary row per zone, in
// input order. Distinct zones are fetched with overlapping reads, but a
// zone's failure never stops the batch: the failed zone gets a row with
// Err set and empty fields, and the rest proceed. The only returned
// error is context cancellation.
func (s *Service) Export(ctx context.Context, zones []string, opts ExportOptions) ([]ExportRow, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultExportConcurrency
	}

	rows := make([]ExportRow, len(zones))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, zone := range zones {
		g.Go(func() error {
			rows[i] = s.exportZone(ctx, zone)
			return nil
		})
	}
	// Workers never return errors; per-zone failures live in the rows.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return rows, err
	}
	return rows, nil
}

// exportZone reads one zone and summarizes its records.
func (s *Service) exportZone(ctx context.Context, zone string) ExportRow {
	row := ExportRow{Zone: normalizeZone(zone)}

	zone, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		row.Err = err
		return row
	}
	row.Zone = zone
	row.ZoneID = zoneID

	records, err := s.provider.ListRecords(ctx, zoneID, domain.RecordFilter{})
	if err != nil {
		row.Err = err
		return row
	}

	www := domain.FQDN("www", zone)
	for _, rec := range records {
		atApex := strings.EqualFold(strings.TrimSuffix(rec.Name, "."), zone)
		switch rec.Type {
		case domain.RecordTypeA:
			if atApex {
				row.ApexA = append(row.ApexA, rec.Content)
			}
		case domain.RecordTypeAAAA:
			if atApex {
				row.ApexAAAA = append(row.ApexAAAA, rec.Content)
			}
		case domain.RecordTypeCNAME:
			if strings.EqualFold(strings.TrimSuffix(rec.Name, "."), www) {
				row.WWW = rec.Content
			}
		case domain.RecordTypeMX:
			row.MXHosts = append(row.MXHosts, rec.Content)
		case domain.RecordTypeTXT:
			row.TXTCount++
		}
	}

	return row
}
