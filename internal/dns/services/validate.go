package services

import (
	"fmt"
	"net/netip"
	"strings"

	"ffc/zonectl/internal/dns/domain"
)

const (
	// DefaultTTL is applied to ad-hoc record specs that leave TTL unset.
	DefaultTTL = 120

	// PagesTTL is the TTL written during GitHub Pages apex cutovers,
	// long enough to be cache-friendly and short enough to revert fast.
	PagesTTL = 300

	// AutoTTL asks the provider to manage the TTL itself.
	AutoTTL = 1

	// DefaultMXPriority is the preference for ad-hoc MX specs that leave
	// it unset. The standard set pins its own priorities explicitly.
	DefaultMXPriority = 10
)

// validRecordTypes is the set of record types the reconciler manages.
var validRecordTypes = func() map[domain.RecordType]bool {
	m := make(map[domain.RecordType]bool, len(domain.ManagedTypes))
	for _, t := range domain.ManagedTypes {
		m[t] = true
	}
	return m
}()

// normalizeZone lowercases and strips any trailing dot from a zone name.
func normalizeZone(zone string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(zone), "."))
}

// validateRecordType returns an error if t is not a managed record type.
func validateRecordType(t domain.RecordType) error {
	if !validRecordTypes[t] {
		return fmt.Errorf("%w: unsupported record type %q (managed: %v)", domain.ErrValidation, t, domain.ManagedTypes)
	}
	return nil
}

// ValidateSpec checks a record spec before it reaches the planner. It
// catches the obvious mismatches (a non-IP value for an A record, an IP
// where a hostname belongs) to fail early with a local error instead of
// a provider round trip.
func ValidateSpec(spec domain.RecordSpec) error {
	if err := validateRecordType(spec.Type); err != nil {
		return err
	}

	content := strings.TrimSpace(spec.Content)
	if content == "" {
		return fmt.Errorf("%w: record content cannot be empty", domain.ErrValidation)
	}
	if spec.TTL < 0 {
		return fmt.Errorf("%w: TTL cannot be negative", domain.ErrValidation)
	}

	switch spec.Type {
	case domain.RecordTypeA:
		addr, err := netip.ParseAddr(content)
		if err != nil || !addr.Is4() {
			return fmt.Errorf("%w: A record content must be a valid IPv4 address, got %q", domain.ErrValidation, content)
		}
	case domain.RecordTypeAAAA:
		addr, err := netip.ParseAddr(content)
		if err != nil || addr.Is4() || addr.Is4In6() {
			return fmt.Errorf("%w: AAAA record content must be a valid IPv6 address, got %q", domain.ErrValidation, content)
		}
	case domain.RecordTypeCNAME, domain.RecordTypeMX:
		if _, err := netip.ParseAddr(content); err == nil {
			return fmt.Errorf("%w: %s record content must be a hostname, got IP address %q", domain.ErrValidation, spec.Type, content)
		}
		if strings.ContainsAny(content, " \t") {
			return fmt.Errorf("%w: %s record content must be a hostname, got %q", domain.ErrValidation, spec.Type, content)
		}
	}

	if spec.Priority != nil && (*spec.Priority < 0 || *spec.Priority > 65535) {
		return fmt.Errorf("%w: priority must be between 0 and 65535, got %d", domain.ErrValidation, *spec.Priority)
	}

	return nil
}
