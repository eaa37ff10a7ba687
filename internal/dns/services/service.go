// Package services provides the DNS zone service layer.
//
// The Service type wraps a domain.Provider and adds zone resolution,
// input normalisation, and validation before handing work to the
// reconcile engine. CLI commands construct a Service from a resolved
// provider and call service methods rather than calling the provider or
// the planner directly.
package services

import (
	"context"
	"errors"
	"fmt"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/dns/reconcile"
)

// Service is the DNS business logic layer. It sits between CLI commands
// and the provider, resolving zone names to IDs and running the
// classify/plan/execute pipeline.
type Service struct {
	provider domain.Provider
	zoneIDs  map[string]string
}

// Option configures a Service.
type Option func(*Service)

// WithZoneIDOverrides supplies a zone-name-to-ID map consulted before
// the provider lookup. Overrides serve zones whose API token lacks the
// zone-list scope, and save a round trip per zone in batch exports.
func WithZoneIDOverrides(overrides map[string]string) Option {
	return func(s *Service) {
		if len(overrides) == 0 {
			return
		}
		s.zoneIDs = make(map[string]string, len(overrides))
		for name, id := range overrides {
			s.zoneIDs[normalizeZone(name)] = id
		}
	}
}

// New returns a Service backed by the given provider.
func New(provider domain.Provider, opts ...Option) *Service {
	svc := &Service{provider: provider}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// resolveZone normalizes a zone name and resolves its provider ID,
// honoring the override map.
func (s *Service) resolveZone(ctx context.Context, zone string) (string, string, error) {
	zone = normalizeZone(zone)
	if zone == "" {
		return "", "", fmt.Errorf("%w: zone name is required", domain.ErrValidation)
	}

	if id, ok := s.zoneIDs[zone]; ok {
		return zone, id, nil
	}

	id, err := s.provider.ResolveZoneID(ctx, zone)
	if err != nil {
		return "", "", err
	}
	return zone, id, nil
}

// ListZones returns all zones in the provider account.
func (s *Service) ListZones(ctx context.Context) ([]domain.Zone, error) {
	return s.provider.ListZones(ctx)
}

// ListRecords returns the zone's records matching filter. A relative
// filter name is qualified against the zone first.
func (s *Service) ListRecords(ctx context.Context, zone string, filter domain.RecordFilter) ([]domain.Record, error) {
	zone, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	if filter.Name != "" {
		filter.Name = domain.FQDN(filter.Name, zone)
	}
	return s.provider.ListRecords(ctx, zoneID, filter)
}

// GetRecord returns a single DNS record by zone and record ID.
func (s *Service) GetRecord(ctx context.Context, zone string, id string) (*domain.Record, error) {
	_, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: record ID is required", domain.ErrValidation)
	}
	return s.provider.GetRecord(ctx, zoneID, id)
}

// EnsureStandard reconciles the zone against the named standard record
// set. Under DryRun the returned report enumerates the operations Apply
// would dispatch without issuing any mutation.
func (s *Service) EnsureStandard(ctx context.Context, zone, version string, mode reconcile.Mode) (*reconcile.Report, error) {
	zone, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}

	if version == "" {
		version = reconcile.DefaultStandardVersion
	}
	desired, err := reconcile.StandardSet(version, zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	actual, err := s.provider.ListRecords(ctx, zoneID, domain.RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to read records for %s: %w", zone, err)
	}

	plan := reconcile.BuildPlan(zone, zoneID, desired, actual)
	return reconcile.Execute(ctx, s.provider, plan, mode)
}

// EnsureRecord reconciles one ad-hoc record spec through the same
// matcher path the standard set uses: absent creates, a differing CNAME
// updates in place, an exact match is left alone.
func (s *Service) EnsureRecord(ctx context.Context, zone string, spec domain.RecordSpec, mode reconcile.Mode) (*reconcile.Report, error) {
	zone, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}

	applySpecDefaults(&spec)
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}
	spec.Name = domain.FQDN(spec.Name, zone)

	// Every record that can match or conflict with the spec lives at its
	// name, so a name-filtered read is enough for classification,
	// including apex CNAME vs address exclusivity.
	actual, err := s.provider.ListRecords(ctx, zoneID, domain.RecordFilter{Name: spec.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to read records for %s: %w", zone, err)
	}

	plan := reconcile.BuildPlan(zone, zoneID, []domain.RecordSpec{spec}, actual)
	return reconcile.Execute(ctx, s.provider, plan, mode)
}

// Audit runs the read-only compliance checks against the zone. It never
// plans or issues mutations.
func (s *Service) Audit(ctx context.Context, zone string) ([]reconcile.CheckResult, error) {
	zone, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}

	actual, err := s.provider.ListRecords(ctx, zoneID, domain.RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to read records for %s: %w", zone, err)
	}

	return reconcile.AuditZone(zone, actual), nil
}

// Pages repoints the zone apex at GitHub Pages in the requested
// representation, tearing down whichever conflicting representation is
// currently there before creating the new one.
func (s *Service) Pages(ctx context.Context, zone string, opts PagesOptions, mode reconcile.Mode) (*reconcile.Report, error) {
	zone, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}

	desired, err := pagesSpecs(opts, zone)
	if err != nil {
		return nil, err
	}

	actual, err := s.provider.ListRecords(ctx, zoneID, domain.RecordFilter{Name: zone})
	if err != nil {
		return nil, fmt.Errorf("failed to read records for %s: %w", zone, err)
	}

	plan := reconcile.PlanReplaceApex(zone, zoneID, desired, actual)
	return reconcile.Execute(ctx, s.provider, plan, mode)
}

// Purge deletes every record of the given types whose name is outside
// the keep list. An empty types slice means all managed types.
func (s *Service) Purge(ctx context.Context, zone string, types []domain.RecordType, keep []string, mode reconcile.Mode) (*reconcile.Report, error) {
	zone, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}

	if len(types) == 0 {
		types = domain.ManagedTypes
	}
	for _, t := range types {
		if err := validateRecordType(t); err != nil {
			return nil, err
		}
	}

	actual, err := s.provider.ListRecords(ctx, zoneID, domain.RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to read records for %s: %w", zone, err)
	}

	plan := reconcile.PlanPurge(zone, zoneID, types, keep, actual)
	return reconcile.Execute(ctx, s.provider, plan, mode)
}

// DeleteRecord deletes a DNS record by its ID, bypassing matching. The
// record is looked up first so the plan can show what it removes; a
// lookup miss still plans the delete, which Apply reports as a no-op.
func (s *Service) DeleteRecord(ctx context.Context, zone string, id string, mode reconcile.Mode) (*reconcile.Report, error) {
	zone, zoneID, err := s.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: record ID is required", domain.ErrValidation)
	}

	rec, err := s.provider.GetRecord(ctx, zoneID, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up record %s: %w", id, err)
	}

	plan := reconcile.PlanDelete(zone, zoneID, id, rec)
	return reconcile.Execute(ctx, s.provider, plan, mode)
}

// applySpecDefaults fills the fields an ad-hoc spec may omit: the
// default TTL and the default MX preference.
func applySpecDefaults(spec *domain.RecordSpec) {
	if spec.TTL <= 0 {
		spec.TTL = DefaultTTL
	}
	if spec.Type == domain.RecordTypeMX && spec.Priority == nil {
		spec.Priority = domain.IntPtr(DefaultMXPriority)
	}
}
