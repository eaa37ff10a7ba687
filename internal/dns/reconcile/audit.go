package reconcile

import (
	"fmt"
	"strings"

	"ffc/zonectl/internal/dns/domain"
)

// CheckResult is the outcome of one compliance check.
type CheckResult struct {
	// Name labels the check in output.
	Name string

	// Passed reports whether the zone satisfies the check.
	Passed bool

	// Detail explains what was found, or what is missing.
	Detail string
}

// AuditZone runs the read-only compliance checks against a zone's record
// set. The checks are deliberately looser than ensure matching: an MX
// routed anywhere into the mail platform passes, and the www CNAME may
// point at any target. Auditing never plans mutations.
func AuditZone(zone string, actual []domain.Record) []CheckResult {
	var results []CheckResult

	// Mail routing into Microsoft 365.
	results = append(results, checkContains(actual,
		"Microsoft 365 MX record",
		domain.RecordTypeMX, "", "mail.protection.outlook.com"))

	results = append(results, checkContains(actual,
		"Microsoft 365 SPF record",
		domain.RecordTypeTXT, "", "include:spf.protection.outlook.com"))

	// DMARC policy published at _dmarc.
	dmarc := CheckResult{Name: "DMARC record"}
	dmarcName := domain.FQDN("_dmarc", zone)
	for _, rec := range actual {
		if rec.Type == domain.RecordTypeTXT && nameEqual(rec.Name, dmarcName) {
			dmarc.Passed = true
			dmarc.Detail = fmt.Sprintf("found at %s", dmarcName)
			break
		}
	}
	if !dmarc.Passed {
		dmarc.Detail = fmt.Sprintf("no TXT record at %s", dmarcName)
	}
	results = append(results, dmarc)

	// GitHub Pages apex: all four A records present.
	pages := CheckResult{Name: "GitHub Pages apex A records"}
	apexIPs := map[string]bool{}
	for _, rec := range actual {
		if rec.Type == domain.RecordTypeA && nameEqual(rec.Name, zone) {
			apexIPs[rec.Content] = true
		}
	}
	var missing []string
	for _, ip := range GitHubPagesA {
		if !apexIPs[ip] {
			missing = append(missing, ip)
		}
	}
	if len(missing) == 0 {
		pages.Passed = true
		pages.Detail = "all four addresses present"
	} else {
		pages.Detail = fmt.Sprintf("missing %s", strings.Join(missing, ", "))
	}
	results = append(results, pages)

	// www CNAME, any target.
	www := CheckResult{Name: "www CNAME record"}
	wwwName := domain.FQDN("www", zone)
	for _, rec := range actual {
		if rec.Type == domain.RecordTypeCNAME && nameEqual(rec.Name, wwwName) {
			www.Passed = true
			www.Detail = fmt.Sprintf("points at %s", rec.Content)
			break
		}
	}
	if !www.Passed {
		www.Detail = fmt.Sprintf("no CNAME record at %s", wwwName)
	}
	results = append(results, www)

	return results
}

// AuditPassed reports whether every check passed.
func AuditPassed(results []CheckResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// checkContains passes when any record of the given type (optionally at
// name) contains needle in its content.
func checkContains(actual []domain.Record, label string, t domain.RecordType, name, needle string) CheckResult {
	result := CheckResult{Name: label}
	for _, rec := range actual {
		if rec.Type != t {
			continue
		}
		if name != "" && !nameEqual(rec.Name, name) {
			continue
		}
		if strings.Contains(rec.Content, needle) {
			result.Passed = true
			result.Detail = fmt.Sprintf("found (%s)", rec.Content)
			return result
		}
	}
	result.Detail = fmt.Sprintf("no %s record containing %q", t, needle)
	return result
}
