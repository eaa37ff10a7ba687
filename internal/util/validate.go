package util

import (
	"fmt"
	"regexp"
	"strings"
)

// validZoneChars matches only alphanumeric characters, hyphens, and periods.
var validZoneChars = regexp.MustCompile(`^[a-zA-Z0-9.\-]+$`)

// validLabelChars additionally allows underscores, which appear in
// service-prefixed owner names such as _dmarc.
var validLabelChars = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)

// ValidateZoneName checks that a zone name conforms to RFC 1123 hostname
// rules:
//   - Only alphanumeric characters (a-z, A-Z, 0-9), hyphens (-), and periods (.)
//   - Contains at least one period (a registrable domain, not a bare label)
//   - First character must be alphanumeric
//   - Last character must not be a hyphen or period
func ValidateZoneName(name string) error {
	if len(name) < 2 {
		return fmt.Errorf("zone name must be at least 2 characters, got %d", len(name))
	}

	if !validZoneChars.MatchString(name) {
		return fmt.Errorf("zone name %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, and periods are allowed)", name)
	}

	if !strings.Contains(name, ".") {
		return fmt.Errorf("zone name %q must be a registrable domain like example.org", name)
	}

	first := name[0]
	if !isAlphanumeric(first) {
		return fmt.Errorf("zone name must start with an alphanumeric character, got %q", string(first))
	}

	last := name[len(name)-1]
	if last == '-' || last == '.' {
		return fmt.Errorf("zone name must not end with a hyphen or period, got %q", string(last))
	}

	return nil
}

// ValidateRecordName checks a record owner name, relative or fully
// qualified. "@" denotes the zone apex. Underscore-prefixed labels are
// allowed; trailing hyphens and periods are not.
func ValidateRecordName(name string) error {
	if name == "@" {
		return nil
	}

	if name == "" {
		return fmt.Errorf("record name cannot be empty (use @ for the zone apex)")
	}

	if !validLabelChars.MatchString(name) {
		return fmt.Errorf("record name %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, underscores, and periods are allowed)", name)
	}

	last := name[len(name)-1]
	if last == '-' || last == '.' {
		return fmt.Errorf("record name must not end with a hyphen or period, got %q", string(last))
	}

	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
