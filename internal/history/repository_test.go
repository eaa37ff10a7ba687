package history

import (
	"path/filepath"
	"testing"
	"time"
)

func tempRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zonectl.db")
	r, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSave_AssignsIDAndTimestamp(t *testing.T) {
	r := tempRepo(t)

	entry := &Entry{
		Command:    "zone ensure",
		Zone:       "example.com",
		Op:         "create",
		RecordType: "TXT",
		RecordName: "example.com",
		Outcome:    OutcomeApplied,
	}

	if err := r.Save(entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestList(t *testing.T) {
	r := tempRepo(t)

	for i := range 3 {
		entry := &Entry{
			Command:   "zone ensure",
			Zone:      "example.com",
			Op:        "create",
			Outcome:   OutcomeApplied,
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := r.Save(entry); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := r.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Timestamp.Before(entries[1].Timestamp) {
		t.Error("expected entries sorted by timestamp descending")
	}
}

func TestListByZone(t *testing.T) {
	r := tempRepo(t)

	entries := []*Entry{
		{Command: "zone ensure", Zone: "example.com", Op: "create", Outcome: OutcomeApplied},
		{Command: "zone ensure", Zone: "other.org", Op: "create", Outcome: OutcomeApplied},
		{Command: "zone purge", Zone: "example.com", Op: "delete", Outcome: OutcomeFailed},
	}
	for _, entry := range entries {
		if err := r.Save(entry); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	zoneEntries, err := r.ListByZone("example.com", 10)
	if err != nil {
		t.Fatalf("ListByZone failed: %v", err)
	}
	if len(zoneEntries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zoneEntries))
	}
	for _, entry := range zoneEntries {
		if entry.Zone != "example.com" {
			t.Errorf("expected zone 'example.com', got %q", entry.Zone)
		}
	}
}

func TestSaveRoundtripFields(t *testing.T) {
	r := tempRepo(t)

	saved := &Entry{
		Command:    "record set",
		Args:       "record set example.com --type CNAME",
		Zone:       "example.com",
		Op:         "update",
		RecordType: "CNAME",
		RecordName: "www.example.com",
		Content:    "example.com",
		Outcome:    OutcomeApplied,
		Detail:     "content differs",
	}
	if err := r.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := r.List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.Command != saved.Command || got.Args != saved.Args || got.Zone != saved.Zone ||
		got.Op != saved.Op || got.RecordType != saved.RecordType || got.RecordName != saved.RecordName ||
		got.Content != saved.Content || got.Outcome != saved.Outcome || got.Detail != saved.Detail {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, *saved)
	}
}

func TestPrune(t *testing.T) {
	r := tempRepo(t)

	oldEntry := &Entry{
		Command:   "zone ensure",
		Zone:      "example.com",
		Op:        "create",
		Outcome:   OutcomeApplied,
		Timestamp: time.Now().UTC().Add(-48 * time.Hour),
	}
	recentEntry := &Entry{
		Command:   "zone ensure",
		Zone:      "example.com",
		Op:        "create",
		Outcome:   OutcomeApplied,
		Timestamp: time.Now().UTC().Add(-1 * time.Hour),
	}

	if err := r.Save(oldEntry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := r.Save(recentEntry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := r.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	remaining, err := r.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", len(remaining))
	}
}
