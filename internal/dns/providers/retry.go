package providers

import (
	"context"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/retry"
)

// Compile-time check that retryingProvider satisfies domain.Provider.
var _ domain.Provider = (*retryingProvider)(nil)

// WithRetry wraps p so that read operations are retried per cfg when the
// failure is transient (network, 5xx, rate limit). Mutations pass through
// untouched: a create retried after an ambiguous failure can duplicate a
// record, and the reconciliation executor surfaces transient errors to
// the caller instead of retrying. Callers opt in per invocation.
func WithRetry(p domain.Provider, cfg retry.Config) domain.Provider {
	return &retryingProvider{inner: p, cfg: cfg}
}

type retryingProvider struct {
	inner domain.Provider
	cfg   retry.Config
}

func (r *retryingProvider) GetDisplayName() string {
	return r.inner.GetDisplayName()
}

func (r *retryingProvider) ResolveZoneID(ctx context.Context, zoneName string) (string, error) {
	var id string
	err := retry.Do(ctx, r.cfg, retry.IsRetryable, func() error {
		var err error
		id, err = r.inner.ResolveZoneID(ctx, zoneName)
		return err
	})
	return id, err
}

func (r *retryingProvider) ListZones(ctx context.Context) ([]domain.Zone, error) {
	var zones []domain.Zone
	err := retry.Do(ctx, r.cfg, retry.IsRetryable, func() error {
		var err error
		zones, err = r.inner.ListZones(ctx)
		return err
	})
	return zones, err
}

func (r *retryingProvider) ListRecords(ctx context.Context, zoneID string, filter domain.RecordFilter) ([]domain.Record, error) {
	var records []domain.Record
	err := retry.Do(ctx, r.cfg, retry.IsRetryable, func() error {
		var err error
		records, err = r.inner.ListRecords(ctx, zoneID, filter)
		return err
	})
	return records, err
}

func (r *retryingProvider) GetRecord(ctx context.Context, zoneID string, id string) (*domain.Record, error) {
	var rec *domain.Record
	err := retry.Do(ctx, r.cfg, retry.IsRetryable, func() error {
		var err error
		rec, err = r.inner.GetRecord(ctx, zoneID, id)
		return err
	})
	return rec, err
}

func (r *retryingProvider) CreateRecord(ctx context.Context, zoneID string, spec domain.RecordSpec) (*domain.Record, error) {
	return r.inner.CreateRecord(ctx, zoneID, spec)
}

func (r *retryingProvider) UpdateRecord(ctx context.Context, zoneID string, id string, spec domain.RecordSpec) (*domain.Record, error) {
	return r.inner.UpdateRecord(ctx, zoneID, id, spec)
}

func (r *retryingProvider) DeleteRecord(ctx context.Context, zoneID string, id string) error {
	return r.inner.DeleteRecord(ctx, zoneID, id)
}
