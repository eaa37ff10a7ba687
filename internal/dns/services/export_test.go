package services

import (
	"context"
	"errors"
	"testing"

	"ffc/zonectl/internal/dns/domain"

	"github.com/google/go-cmp/cmp"
)

func seedSummaryZone(mock *mockProvider, zone, zoneID string) {
	mock.zones[zone] = zoneID
	mock.seed(zoneID,
		domain.Record{ID: zoneID + "-a1", Type: domain.RecordTypeA, Name: zone, Content: "185.199.108.153"},
		domain.Record{ID: zoneID + "-a2", Type: domain.RecordTypeA, Name: zone, Content: "185.199.109.153"},
		domain.Record{ID: zoneID + "-aaaa", Type: domain.RecordTypeAAAA, Name: zone, Content: "2606:50c0:8000::153"},
		domain.Record{ID: zoneID + "-www", Type: domain.RecordTypeCNAME, Name: "www." + zone, Content: zone},
		domain.Record{ID: zoneID + "-other", Type: domain.RecordTypeCNAME, Name: "blog." + zone, Content: "blog.example.net"},
		domain.Record{ID: zoneID + "-mx", Type: domain.RecordTypeMX, Name: zone, Content: "mail.protection.outlook.com", Priority: 0},
		domain.Record{ID: zoneID + "-txt1", Type: domain.RecordTypeTXT, Name: zone, Content: "v=spf1 -all"},
		domain.Record{ID: zoneID + "-txt2", Type: domain.RecordTypeTXT, Name: "_dmarc." + zone, Content: "v=DMARC1; p=none"},
	)
}

func TestService_Export_SummaryRow(t *testing.T) {
	mock := newMockProvider()
	seedSummaryZone(mock, "charity.org", "zone-charity")
	svc := New(mock)

	rows, err := svc.Export(context.Background(), []string{"charity.org"}, ExportOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	want := ExportRow{
		Zone:     "charity.org",
		ZoneID:   "zone-charity",
		ApexA:    []string{"185.199.108.153", "185.199.109.153"},
		ApexAAAA: []string{"2606:50c0:8000::153"},
		WWW:      "charity.org",
		MXHosts:  []string{"mail.protection.outlook.com"},
		TXTCount: 2,
	}
	if diff := cmp.Diff(want, rows[0], cmp.Comparer(func(a, b error) bool { return errors.Is(a, b) })); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
	if rows[0].FirstApexA() != "185.199.108.153" {
		t.Errorf("FirstApexA = %q, want first apex A in provider order", rows[0].FirstApexA())
	}
}

func TestService_Export_RowsInInputOrder(t *testing.T) {
	mock := newMockProvider()
	seedSummaryZone(mock, "alpha.org", "zone-a")
	seedSummaryZone(mock, "beta.org", "zone-b")
	seedSummaryZone(mock, "gamma.org", "zone-c")
	svc := New(mock)

	input := []string{"gamma.org", "alpha.org", "beta.org"}
	rows, err := svc.Export(context.Background(), input, ExportOptions{Concurrency: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var got []string
	for _, row := range rows {
		got = append(got, row.Zone)
	}
	if diff := cmp.Diff(input, got); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
}

// A failing zone must not stop the batch: its row carries the error and
// empty fields, and every other zone still exports.
func TestService_Export_FailedZoneGetsEmptyRow(t *testing.T) {
	mock := newMockProvider()
	seedSummaryZone(mock, "good.org", "zone-good")
	seedSummaryZone(mock, "also-good.org", "zone-also")
	mock.zones["broken.org"] = "zone-broken"
	mock.listErr["zone-broken"] = errors.New("read failed")
	svc := New(mock)

	rows, err := svc.Export(context.Background(),
		[]string{"good.org", "broken.org", "also-good.org"}, ExportOptions{Concurrency: 1})
	if err != nil {
		t.Fatalf("expected no batch error, got %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].Err != nil || rows[2].Err != nil {
		t.Errorf("healthy zones reported errors: %v, %v", rows[0].Err, rows[2].Err)
	}
	if rows[1].Err == nil {
		t.Fatal("broken zone should carry its error")
	}
	if rows[1].Zone != "broken.org" || len(rows[1].ApexA) != 0 || rows[1].TXTCount != 0 {
		t.Errorf("broken row = %+v, want empty fields with the zone name", rows[1])
	}
	if len(rows[0].ApexA) == 0 || len(rows[2].ApexA) == 0 {
		t.Error("healthy rows should still be populated")
	}
}

func TestService_Export_UnknownZone(t *testing.T) {
	mock := newMockProvider()
	svc := New(mock)

	rows, err := svc.Export(context.Background(), []string{"missing.org"}, ExportOptions{})
	if err != nil {
		t.Fatalf("expected no batch error, got %v", err)
	}
	if !errors.Is(rows[0].Err, domain.ErrNotFound) {
		t.Errorf("row error = %v, want ErrNotFound", rows[0].Err)
	}
}

func TestService_Export_HonorsZoneIDOverrides(t *testing.T) {
	mock := newMockProvider()
	mock.seed("zone-override", domain.Record{
		ID: "a1", Type: domain.RecordTypeA, Name: "hidden.org", Content: "9.9.9.9",
	})
	svc := New(mock, WithZoneIDOverrides(map[string]string{"hidden.org": "zone-override"}))

	rows, err := svc.Export(context.Background(), []string{"hidden.org"}, ExportOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rows[0].Err != nil {
		t.Fatalf("row error = %v, want override to bypass zone lookup", rows[0].Err)
	}
	if diff := cmp.Diff([]string{"9.9.9.9"}, rows[0].ApexA); diff != "" {
		t.Errorf("ApexA mismatch (-want +got):\n%s", diff)
	}
	if len(mock.resolveCalls) != 0 {
		t.Errorf("resolveCalls = %v, want none", mock.resolveCalls)
	}
}

func TestParseExportFormat(t *testing.T) {
	if f, err := ParseExportFormat(""); err != nil || f != ExportFormatSummary {
		t.Errorf("ParseExportFormat(\"\") = %v, %v; want summary default", f, err)
	}
	if f, err := ParseExportFormat("APEX-A"); err != nil || f != ExportFormatApexA {
		t.Errorf("ParseExportFormat(APEX-A) = %v, %v; want apex-a", f, err)
	}
	if _, err := ParseExportFormat("yaml"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown format, got %v", err)
	}
}
