package domain

import "strings"

// RecordType represents a DNS record type.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeMX    RecordType = "MX"
	RecordTypeTXT   RecordType = "TXT"
)

// ManagedTypes lists the record types the reconciler understands, in the
// order they are displayed.
var ManagedTypes = []RecordType{
	RecordTypeA,
	RecordTypeAAAA,
	RecordTypeCNAME,
	RecordTypeMX,
	RecordTypeTXT,
}

// MultiValue reports whether multiple records of type t may coexist at the
// same name. Multi-value types are additive: a desired value is either
// present exactly or absent, and non-matching siblings are left alone.
// CNAME is the only single-slot type, updated in place.
func (t RecordType) MultiValue() bool {
	return t != RecordTypeCNAME
}

// Record represents a single DNS record as held by the provider.
type Record struct {
	// ID is the provider-assigned record identifier. It is the identity
	// for API calls; reconciliation matches on (type, name, content,
	// priority) instead, since desired state carries no ID.
	ID string `json:"id"`

	// ZoneID is the provider-assigned identifier of the owning zone.
	ZoneID string `json:"zone_id"`

	// ZoneName is the zone's domain name (e.g. "example.org").
	ZoneName string `json:"zone_name"`

	// Name is the fully-qualified record name as returned by the provider.
	// The zone apex is represented by the bare zone name.
	Name string `json:"name"`

	// Type is the DNS record type.
	Type RecordType `json:"type"`

	// Content is the record value (IP address, hostname, text).
	Content string `json:"content"`

	// TTL is the time-to-live in seconds. 1 means the provider picks
	// automatically.
	TTL int `json:"ttl"`

	// Priority is the MX preference value. Zero is a valid priority for
	// MX records; for other types the field is unused.
	Priority int `json:"priority"`

	// Proxied indicates traffic routes through the provider's edge
	// instead of being answered as plain DNS.
	Proxied bool `json:"proxied"`

	// Comment is an optional provider-side annotation on the record.
	Comment string `json:"comment"`

	// ModifiedOn is the provider's last-modified timestamp (RFC 3339).
	ModifiedOn string `json:"modified_on"`
}

// Zone represents a DNS zone in the provider account. A domain name
// resolves to at most one zone ID at any time.
type Zone struct {
	// ID is the opaque provider-assigned zone identifier.
	ID string `json:"id"`

	// Name is the registered domain name (e.g. "example.org").
	Name string `json:"name"`

	// Status is the provider's zone status (e.g. "active").
	Status string `json:"status"`

	// CreatedOn is when the zone was added to the account.
	CreatedOn string `json:"created_on"`
}

// Apex is the relative name denoting the zone apex in a RecordSpec.
const Apex = "@"

// FQDN resolves a relative record name against a zone: "@" or "" is the
// apex (the bare zone name), anything else is prefixed onto the zone.
// Names already ending in the zone are passed through.
func FQDN(relative, zone string) string {
	relative = strings.TrimSpace(relative)
	zone = strings.TrimSuffix(strings.TrimSpace(zone), ".")
	if relative == "" || relative == Apex {
		return zone
	}
	relative = strings.TrimSuffix(relative, ".")
	if relative == zone || strings.HasSuffix(relative, "."+zone) {
		return relative
	}
	return relative + "." + zone
}
