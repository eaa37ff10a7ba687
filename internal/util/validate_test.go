package util

import (
	"testing"
)

func TestValidateZoneName_Valid(t *testing.T) {
	valid := []string{
		"example.com",
		"example.org",
		"my-site.co.uk",
		"a1.dev",
		"sub.example.com",
		"UPPERCASE.COM",
		"MiXeD123.net",
		"123numeric.io",
		"a-b.c-d.org",
	}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateZoneName(name); err != nil {
				t.Errorf("expected %q to be valid, got error: %v", name, err)
			}
		})
	}
}

func TestValidateZoneName_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		wantMsg string
	}{
		{"", "at least 2 characters"},
		{"a", "at least 2 characters"},
		{"localhost", "registrable domain"},
		{"this is a test", "invalid characters"},
		{"example com", "invalid characters"},
		{"-example.com", "must start with an alphanumeric"},
		{".example.com", "must start with an alphanumeric"},
		{"example.com-", "must not end with a hyphen"},
		{"example.com.", "must not end with a hyphen or period"},
		{"hello world!.com", "invalid characters"},
		{"example@site.com", "invalid characters"},
		{"under_score.com", "invalid characters"},
		{"example\t.com", "invalid characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateZoneName(tt.name)
			if err == nil {
				t.Errorf("expected %q to be invalid, got nil", tt.name)
				return
			}
			if got := err.Error(); !contains(got, tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, got)
			}
		})
	}
}

func TestValidateRecordName_Valid(t *testing.T) {
	valid := []string{
		"@",
		"www",
		"_dmarc",
		"_domainkey.mail",
		"sub.www",
		"www.example.com",
		"a",
	}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateRecordName(name); err != nil {
				t.Errorf("expected %q to be valid, got error: %v", name, err)
			}
		})
	}
}

func TestValidateRecordName_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		wantMsg string
	}{
		{"", "cannot be empty"},
		{"www.", "must not end with a hyphen or period"},
		{"www-", "must not end with a hyphen or period"},
		{"w w", "invalid characters"},
		{"www!", "invalid characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordName(tt.name)
			if err == nil {
				t.Errorf("expected %q to be invalid, got nil", tt.name)
				return
			}
			if got := err.Error(); !contains(got, tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, got)
			}
		})
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && searchString(s, substr)
}

func searchString(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
