package reconcile

import (
	"fmt"
	"net/netip"
	"strings"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/util"
)

// Verdict is the matcher's judgment of one desired spec against a zone's
// actual record set.
type Verdict int

const (
	// VerdictSatisfied means an exact match already exists.
	VerdictSatisfied Verdict = iota

	// VerdictAbsent means no matching record exists and one must be
	// created.
	VerdictAbsent

	// VerdictNeedsUpdate means a single-slot record exists at the name
	// but its value differs; it is updated in place.
	VerdictNeedsUpdate

	// VerdictConflict means the desired type is mutually exclusive
	// with records of another type at the same name (apex CNAME vs
	// A/AAAA). Planning must tear the conflicting records down before
	// creating the desired one.
	VerdictConflict
)

func (v Verdict) String() string {
	switch v {
	case VerdictSatisfied:
		return "satisfied"
	case VerdictAbsent:
		return "absent"
	case VerdictNeedsUpdate:
		return "needs-update"
	case VerdictConflict:
		return "conflict"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Outcome is the full result of classifying one desired spec.
type Outcome struct {
	Verdict Verdict

	// Existing is the matched record for Satisfied and NeedsUpdate.
	Existing *domain.Record

	// Conflicts holds the mutually-exclusive records for
	// VerdictConflict, in the order the provider returned them.
	Conflicts []domain.Record

	// Warnings carries non-fatal findings, such as duplicate
	// single-slot records that were ignored.
	Warnings []string
}

// Classify decides how one desired spec relates to the zone's actual
// record set. Pure function: no I/O, no mutation of actual.
//
// Multi-value types (A, AAAA, MX, TXT) are additive: the verdict is
// Satisfied on an exact content match (plus priority for MX) and Absent
// otherwise; existing non-matching siblings are never update or delete
// candidates. The single-slot type (CNAME) is updated in place when its
// value differs. When several single-slot records occupy one name
// (provider-inconsistent state) the first returned wins and the rest are
// surfaced as warnings.
func Classify(zone string, desired domain.RecordSpec, actual []domain.Record) Outcome {
	fqdn := domain.FQDN(desired.Name, zone)

	// Apex type exclusivity comes first: an apex CNAME cannot coexist
	// with apex address records, so the desired record cannot be
	// created (or meaningfully compared) until the other
	// representation is gone.
	if conflicts := apexConflicts(zone, fqdn, desired.Type, actual); len(conflicts) > 0 {
		return Outcome{Verdict: VerdictConflict, Conflicts: conflicts}
	}

	var same []domain.Record
	for _, rec := range actual {
		if rec.Type == desired.Type && nameEqual(rec.Name, fqdn) {
			same = append(same, rec)
		}
	}

	if desired.Type.MultiValue() {
		for i := range same {
			if !contentEqual(desired.Type, same[i].Content, desired.Content) {
				continue
			}
			if desired.Type == domain.RecordTypeMX && same[i].Priority != desired.Pri() {
				continue
			}
			return Outcome{Verdict: VerdictSatisfied, Existing: &same[i]}
		}
		return Outcome{Verdict: VerdictAbsent}
	}

	// Single-slot path.
	if len(same) == 0 {
		return Outcome{Verdict: VerdictAbsent}
	}

	out := Outcome{Existing: &same[0]}
	if len(same) > 1 {
		ids := make([]string, 0, len(same)-1)
		for _, dup := range same[1:] {
			ids = append(ids, dup.ID)
		}
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"%d duplicate %s records at %s (ids %s); using the first and leaving the rest untouched",
			len(same)-1, desired.Type, fqdn, strings.Join(ids, ", ")))
	}

	if singleSlotMatches(desired, same[0]) {
		out.Verdict = VerdictSatisfied
	} else {
		out.Verdict = VerdictNeedsUpdate
	}
	return out
}

// apexConflicts returns the records whose type is mutually exclusive with
// the desired type at the zone apex. Empty for non-apex names.
func apexConflicts(zone, fqdn string, desired domain.RecordType, actual []domain.Record) []domain.Record {
	if !nameEqual(fqdn, zone) {
		return nil
	}

	var exclusive func(domain.RecordType) bool
	switch desired {
	case domain.RecordTypeA, domain.RecordTypeAAAA:
		exclusive = func(t domain.RecordType) bool { return t == domain.RecordTypeCNAME }
	case domain.RecordTypeCNAME:
		exclusive = func(t domain.RecordType) bool {
			return t == domain.RecordTypeA || t == domain.RecordTypeAAAA
		}
	default:
		return nil
	}

	var conflicts []domain.Record
	for _, rec := range actual {
		if nameEqual(rec.Name, fqdn) && exclusive(rec.Type) {
			conflicts = append(conflicts, rec)
		}
	}
	return conflicts
}

// singleSlotMatches reports whether an existing single-slot record
// already satisfies the desired spec. TTL and proxied participate only
// when the spec states them.
func singleSlotMatches(desired domain.RecordSpec, existing domain.Record) bool {
	if !contentEqual(desired.Type, existing.Content, desired.Content) {
		return false
	}
	if desired.TTL != 0 && existing.TTL != desired.TTL {
		return false
	}
	if desired.Proxied != nil && existing.Proxied != *desired.Proxied {
		return false
	}
	return true
}

// nameEqual compares DNS names case-insensitively, ignoring whitespace
// and trailing dots.
func nameEqual(a, b string) bool {
	return util.NormalizeKey(strings.TrimSuffix(a, ".")) == util.NormalizeKey(strings.TrimSuffix(b, "."))
}

// contentEqual compares record content per type. Addresses compare as
// parsed IPs so textual IPv6 variants ("2606:50c0:8000:0:0:0:0:153" vs
// "2606:50c0:8000::153") match; hostname targets compare
// case-insensitively; TXT values compare with surrounding quotes
// stripped, since the provider returns TXT content quoted.
func contentEqual(t domain.RecordType, actual, desired string) bool {
	switch t {
	case domain.RecordTypeA, domain.RecordTypeAAAA:
		a, errA := netip.ParseAddr(strings.TrimSpace(actual))
		d, errD := netip.ParseAddr(strings.TrimSpace(desired))
		if errA == nil && errD == nil {
			return a == d
		}
		return strings.TrimSpace(actual) == strings.TrimSpace(desired)
	case domain.RecordTypeCNAME, domain.RecordTypeMX:
		return nameEqual(actual, desired)
	case domain.RecordTypeTXT:
		return strings.Trim(strings.TrimSpace(actual), `"`) == strings.Trim(strings.TrimSpace(desired), `"`)
	}
	return actual == desired
}
