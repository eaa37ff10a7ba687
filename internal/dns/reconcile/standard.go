package reconcile

import (
	"fmt"
	"sort"

	"ffc/zonectl/internal/dns/domain"
)

// DefaultStandardVersion is the standard set applied when the caller
// does not name one.
const DefaultStandardVersion = "ffc-2024"

// GitHubPagesA is the GitHub Pages apex A set.
var GitHubPagesA = []string{
	"185.199.108.153",
	"185.199.109.153",
	"185.199.110.153",
	"185.199.111.153",
}

// GitHubPagesAAAA is the GitHub Pages apex AAAA set.
var GitHubPagesAAAA = []string{
	"2606:50c0:8000::153",
	"2606:50c0:8001::153",
	"2606:50c0:8002::153",
	"2606:50c0:8003::153",
}

// standardSets maps a version name to a builder producing the desired
// specs for a zone. The standard is an explicit value handed to the
// planner, not a hidden constant, so alternate standards are testable
// and selectable per invocation.
var standardSets = map[string]func(zone string) []domain.RecordSpec{
	"ffc-2024": ffc2024,
}

// StandardVersions returns the known standard set names, sorted.
func StandardVersions() []string {
	names := make([]string, 0, len(standardSets))
	for name := range standardSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StandardSet builds the desired record specs of the named standard for
// a zone.
func StandardSet(version, zone string) ([]domain.RecordSpec, error) {
	build, ok := standardSets[version]
	if !ok {
		return nil, fmt.Errorf("unknown standard set %q (known: %v)", version, StandardVersions())
	}
	return build(zone), nil
}

// ffc2024 is the Free For Charity baseline: Microsoft 365 mail routing
// plus GitHub Pages hosting at the apex and www. Specs leave TTL unset
// so matching is by value and existing TTLs are not churned; creates
// fall back to the provider's automatic TTL.
func ffc2024(zone string) []domain.RecordSpec {
	off := domain.BoolPtr(false)
	specs := []domain.RecordSpec{
		{
			Type:     domain.RecordTypeMX,
			Name:     domain.Apex,
			Content:  "freeforcharity-org.mail.protection.outlook.com",
			Priority: domain.IntPtr(0),
		},
		{
			Type:    domain.RecordTypeTXT,
			Name:    domain.Apex,
			Content: "v=spf1 include:spf.protection.outlook.com -all",
		},
		{
			Type:    domain.RecordTypeTXT,
			Name:    "_dmarc",
			Content: "v=DMARC1; p=none; rua=mailto:dmarc-rua@freeforcharity.org",
		},
	}

	for _, ip := range GitHubPagesA {
		specs = append(specs, domain.RecordSpec{
			Type:    domain.RecordTypeA,
			Name:    domain.Apex,
			Content: ip,
			Proxied: off,
		})
	}

	specs = append(specs, domain.RecordSpec{
		Type:    domain.RecordTypeCNAME,
		Name:    "www",
		Content: zone,
		Proxied: off,
	})

	return specs
}
