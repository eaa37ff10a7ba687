package services

import (
	"fmt"
	"strings"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/dns/reconcile"
)

// PagesMode selects the apex representation for GitHub Pages hosting.
type PagesMode string

const (
	// PagesApexA points the apex at the GitHub Pages IPv4 set.
	PagesApexA PagesMode = "apex-a"

	// PagesApexAAAA points the apex at the GitHub Pages IPv6 set.
	PagesApexAAAA PagesMode = "apex-aaaa"

	// PagesApexCNAME points the apex at a target host via CNAME
	// flattening.
	PagesApexCNAME PagesMode = "apex-cname"
)

// ParsePagesMode validates a mode string from the command line.
func ParsePagesMode(s string) (PagesMode, error) {
	switch PagesMode(strings.ToLower(strings.TrimSpace(s))) {
	case PagesApexA:
		return PagesApexA, nil
	case PagesApexAAAA:
		return PagesApexAAAA, nil
	case PagesApexCNAME:
		return PagesApexCNAME, nil
	}
	return "", fmt.Errorf("%w: unknown pages mode %q (want %s, %s, or %s)",
		domain.ErrValidation, s, PagesApexA, PagesApexAAAA, PagesApexCNAME)
}

// PagesOptions configures an apex cutover.
type PagesOptions struct {
	// Mode is the desired apex representation.
	Mode PagesMode

	// Target is the CNAME target host. Required for apex-cname,
	// rejected otherwise.
	Target string
}

// pagesSpecs builds the desired apex records for a cutover.
func pagesSpecs(opts PagesOptions, zone string) ([]domain.RecordSpec, error) {
	target := strings.TrimSpace(opts.Target)
	off := domain.BoolPtr(false)

	switch opts.Mode {
	case PagesApexA:
		if target != "" {
			return nil, fmt.Errorf("%w: --target applies to %s mode only", domain.ErrValidation, PagesApexCNAME)
		}
		specs := make([]domain.RecordSpec, 0, len(reconcile.GitHubPagesA))
		for _, ip := range reconcile.GitHubPagesA {
			specs = append(specs, domain.RecordSpec{
				Type:    domain.RecordTypeA,
				Name:    domain.Apex,
				Content: ip,
				TTL:     PagesTTL,
				Proxied: off,
			})
		}
		return specs, nil

	case PagesApexAAAA:
		if target != "" {
			return nil, fmt.Errorf("%w: --target applies to %s mode only", domain.ErrValidation, PagesApexCNAME)
		}
		specs := make([]domain.RecordSpec, 0, len(reconcile.GitHubPagesAAAA))
		for _, ip := range reconcile.GitHubPagesAAAA {
			specs = append(specs, domain.RecordSpec{
				Type:    domain.RecordTypeAAAA,
				Name:    domain.Apex,
				Content: ip,
				TTL:     PagesTTL,
				Proxied: off,
			})
		}
		return specs, nil

	case PagesApexCNAME:
		if target == "" {
			return nil, fmt.Errorf("%w: --target is required for %s mode", domain.ErrValidation, PagesApexCNAME)
		}
		spec := domain.RecordSpec{
			Type:    domain.RecordTypeCNAME,
			Name:    domain.Apex,
			Content: target,
			TTL:     PagesTTL,
			Proxied: off,
		}
		if err := ValidateSpec(spec); err != nil {
			return nil, err
		}
		return []domain.RecordSpec{spec}, nil
	}

	_, err := ParsePagesMode(string(opts.Mode))
	return nil, err
}
