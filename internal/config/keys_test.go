package config

import (
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	spec := Lookup("dns.provider")
	if spec == nil {
		t.Fatal("expected to find key 'dns.provider', got nil")
	}
	if spec.Name != "dns.provider" {
		t.Errorf("expected Name %q, got %q", "dns.provider", spec.Name)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("DNS.Provider")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "dns.provider" {
		t.Errorf("expected Name %q, got %q", "dns.provider", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	spec := Lookup("nonexistent.key")
	if spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveGetAndSet(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil {
			t.Errorf("key %q has nil Get function", k.Name)
		}
		if k.Set == nil {
			t.Errorf("key %q has nil Set function", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeys_GetSetRoundtrip(t *testing.T) {
	// Each key needs a value that parses for it.
	values := map[string]string{
		"dns.provider":       "cloudflare",
		"api.base_url":       "https://cf-gateway.internal/client/v4",
		"zone.id_overrides":  "example.org=abc123",
		"export.concurrency": "8",
	}

	for _, k := range Keys {
		value, ok := values[k.Name]
		if !ok {
			t.Fatalf("no test value registered for key %q", k.Name)
		}

		cfg := &Config{}
		if err := k.Set(cfg, value); err != nil {
			t.Fatalf("key %q: Set(%q) failed: %v", k.Name, value, err)
		}
		if got := k.Get(cfg); got != value {
			t.Errorf("key %q: Set then Get = %q, want %q", k.Name, got, value)
		}
	}
}

func TestKeys_SetRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "export.concurrency", value: "four"},
		{key: "export.concurrency", value: "-2"},
		{key: "zone.id_overrides", value: "no-separator"},
		{key: "zone.id_overrides", value: "example.org="},
	}

	for _, tt := range tests {
		spec := Lookup(tt.key)
		if spec == nil {
			t.Fatalf("key %q not found", tt.key)
		}
		cfg := &Config{}
		if err := spec.Set(cfg, tt.value); err == nil {
			t.Errorf("key %q: expected error for value %q, got nil", tt.key, tt.value)
		}
	}
}

func TestKeys_ExportConcurrencyEmptyClears(t *testing.T) {
	spec := Lookup("export.concurrency")
	if spec == nil {
		t.Fatal("key 'export.concurrency' not found")
	}

	cfg := &Config{ExportConcurrency: 8}
	if err := spec.Set(cfg, ""); err != nil {
		t.Fatalf("Set(\"\") failed: %v", err)
	}
	if cfg.ExportConcurrency != 0 {
		t.Errorf("expected cleared concurrency, got %d", cfg.ExportConcurrency)
	}
	if got := spec.Get(cfg); got != "" {
		t.Errorf("expected empty Get for zero concurrency, got %q", got)
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("expected %d names, got %d", len(Keys), len(names))
	}
	for i, name := range names {
		if name != Keys[i].Name {
			t.Errorf("index %d: expected %q, got %q", i, Keys[i].Name, name)
		}
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) {
			t.Errorf("expected key %q in help output", k.Name)
		}
		if !strings.Contains(help, k.Description) {
			t.Errorf("expected description %q in help output", k.Description)
		}
	}
}
