package domain

import "fmt"

// RecordSpec is the declarative target for one DNS record. It has no ID:
// it is compared against actual records by the (type, name, content,
// priority) tuple, never looked up.
type RecordSpec struct {
	// Type is the DNS record type. Required.
	Type RecordType

	// Name is the record name relative to the zone. "@" (or empty)
	// means the zone apex. A fully-qualified name inside the zone is
	// also accepted.
	Name string

	// Content is the desired record value. Required.
	Content string

	// TTL is the desired time-to-live in seconds. Zero means the spec
	// does not care; creates fall back to a per-type default and
	// matching ignores the field.
	TTL int

	// Priority is the MX preference. Zero is meaningful for MX, so the
	// field is a pointer: nil means unset. Ad-hoc MX specs that omit it
	// get the service-layer default before planning.
	Priority *int

	// Proxied is the desired edge-proxy flag. nil means the spec does
	// not care; creates default to unproxied.
	Proxied *bool

	// Comment is an optional annotation written to the provider on
	// create and update.
	Comment string
}

// Pri returns the spec's priority value, defaulting to zero when unset.
func (s RecordSpec) Pri() int {
	if s.Priority == nil {
		return 0
	}
	return *s.Priority
}

// String renders the spec the way plans and logs display it.
func (s RecordSpec) String() string {
	if s.Type == RecordTypeMX {
		return fmt.Sprintf("%s %s -> %s (priority %d)", s.Type, s.Name, s.Content, s.Pri())
	}
	return fmt.Sprintf("%s %s -> %s", s.Type, s.Name, s.Content)
}

// IntPtr returns a pointer to v, for building RecordSpec literals.
func IntPtr(v int) *int { return &v }

// BoolPtr returns a pointer to v, for building RecordSpec literals.
func BoolPtr(v bool) *bool { return &v }

// RecordFilter constrains a record listing. Zero-value fields are
// ignored; Name must be fully qualified when set.
type RecordFilter struct {
	Type RecordType
	Name string
}
