package domain

import "context"

// Provider is the typed boundary over a DNS provider's HTTP API: zone
// lookup plus record CRUD. Pure I/O, no reconciliation policy. Callers
// resolve a zone name to its ID once and pass the ID to every record
// operation.
type Provider interface {
	// GetDisplayName returns the human-readable provider name
	// (e.g. "Cloudflare").
	GetDisplayName() string

	// ResolveZoneID looks up the zone ID for an exact domain name.
	// Returns ErrNotFound when no zone matches, ErrUnauthorized when
	// the credential lacks zone read scope.
	ResolveZoneID(ctx context.Context, zoneName string) (string, error)

	// ListZones returns every zone in the account, across all pages.
	ListZones(ctx context.Context) ([]Zone, error)

	// ListRecords returns the zone's records matching filter, across
	// all pages, in the order the provider returned them. A zero
	// filter returns everything.
	ListRecords(ctx context.Context, zoneID string, filter RecordFilter) ([]Record, error)

	// GetRecord returns a single record by its provider ID.
	GetRecord(ctx context.Context, zoneID string, id string) (*Record, error)

	// CreateRecord creates a record from spec; the provider assigns
	// the ID. Returns ErrValidation when content is rejected.
	CreateRecord(ctx context.Context, zoneID string, spec RecordSpec) (*Record, error)

	// UpdateRecord replaces the record's fields with spec. Full
	// replace, not a partial merge: every field in spec is
	// authoritative afterward.
	UpdateRecord(ctx context.Context, zoneID string, id string, spec RecordSpec) (*Record, error)

	// DeleteRecord deletes a record by ID. Deleting an id that is
	// already gone returns ErrNotFound; callers that want idempotent
	// deletes treat that as success.
	DeleteRecord(ctx context.Context, zoneID string, id string) error
}
