package reconcile

import (
	"fmt"
	"strings"

	"ffc/zonectl/internal/dns/domain"
)

// BuildPlan computes the ordered operations that converge the zone's
// actual record set toward the desired specs. Each spec is classified
// independently; satisfied specs emit nothing, absent specs emit
// creates, and differing single-slot records emit in-place updates.
//
// When a desired apex A/AAAA collides with an existing apex CNAME (or
// the reverse), deletes for every conflicting record are prepended
// before any create of the new type. The provider rejects coexisting
// representations, so this ordering is load-bearing.
//
// Multi-value records not named by the desired set are never touched;
// bulk removal is PlanPurge's job, a deliberately separate operation
// class.
func BuildPlan(zone, zoneID string, desired []domain.RecordSpec, actual []domain.Record) *Plan {
	plan := &Plan{Zone: zone, ZoneID: zoneID}

	var teardown []Operation
	tornDown := map[string]bool{}

	for _, spec := range desired {
		spec.Name = domain.FQDN(spec.Name, zone)
		out := Classify(zone, spec, actual)
		plan.Warnings = append(plan.Warnings, out.Warnings...)

		switch out.Verdict {
		case VerdictSatisfied:
			plan.Satisfied++

		case VerdictAbsent:
			plan.Ops = append(plan.Ops, Operation{
				Kind:      OpCreate,
				Spec:      spec,
				Rationale: fmt.Sprintf("no %s record at %s with the desired value", spec.Type, spec.Name),
			})

		case VerdictNeedsUpdate:
			plan.Ops = append(plan.Ops, Operation{
				Kind:      OpUpdate,
				Spec:      spec,
				RecordID:  out.Existing.ID,
				Prior:     out.Existing,
				Rationale: fmt.Sprintf("%s %s points at %q, want %q", spec.Type, spec.Name, out.Existing.Content, spec.Content),
			})

		case VerdictConflict:
			for _, rec := range out.Conflicts {
				if tornDown[rec.ID] {
					continue
				}
				tornDown[rec.ID] = true
				teardown = append(teardown, Operation{
					Kind:      OpDelete,
					RecordID:  rec.ID,
					Prior:     &rec,
					Rationale: fmt.Sprintf("apex %s cannot coexist with desired %s records", rec.Type, spec.Type),
				})
			}
			plan.Ops = append(plan.Ops, Operation{
				Kind:      OpCreate,
				Spec:      spec,
				Rationale: fmt.Sprintf("create %s at the apex after conflicting records are removed", spec.Type),
			})
		}
	}

	plan.Ops = append(teardown, plan.Ops...)
	return plan
}

// PlanReplaceApex converges the zone apex onto exactly the desired
// records: conflicting representations (CNAME vs A/AAAA) and stale
// same-type apex records outside the desired set are deleted, missing
// desired records are created, and records already exact are left
// untouched. Deletes always precede creates.
//
// The values of replaced address records are preserved in a comment on
// the new records, so a bad cutover can be reverted by hand.
func PlanReplaceApex(zone, zoneID string, desired []domain.RecordSpec, actual []domain.Record) *Plan {
	plan := &Plan{Zone: zone, ZoneID: zoneID}

	desiredTypes := map[domain.RecordType]bool{}
	for _, spec := range desired {
		desiredTypes[spec.Type] = true
	}

	wanted := func(rec domain.Record) bool {
		for _, spec := range desired {
			if spec.Type == rec.Type && contentEqual(spec.Type, rec.Content, spec.Content) {
				return true
			}
		}
		return false
	}

	// Teardown pass: walk the existing apex records once, in provider
	// order, deleting conflicting representations and stale same-type
	// values. Replaced address values are collected per type for the
	// revert comment.
	var teardown []Operation
	replaced := map[domain.RecordType][]string{}
	for i := range actual {
		rec := actual[i]
		if !nameEqual(rec.Name, zone) {
			continue
		}

		var rationale string
		switch {
		case exclusiveWithDesired(rec.Type, desiredTypes):
			rationale = fmt.Sprintf("apex %s cannot coexist with the desired apex records", rec.Type)
		case rec.Type.MultiValue() && desiredTypes[rec.Type] && !wanted(rec):
			// Stale same-type addresses are deleted; a differing
			// single-slot CNAME is updated in place below instead.
			rationale = fmt.Sprintf("apex %s %q is not in the desired set", rec.Type, rec.Content)
			replaced[rec.Type] = append(replaced[rec.Type], rec.Content)
		default:
			continue
		}

		teardown = append(teardown, Operation{
			Kind:      OpDelete,
			RecordID:  rec.ID,
			Prior:     &rec,
			Rationale: rationale,
		})
	}

	for _, spec := range desired {
		spec.Name = domain.FQDN(spec.Name, zone)
		out := Classify(zone, spec, actual)
		plan.Warnings = append(plan.Warnings, out.Warnings...)

		if out.Verdict == VerdictSatisfied {
			plan.Satisfied++
			continue
		}
		if out.Verdict == VerdictNeedsUpdate {
			plan.Ops = append(plan.Ops, Operation{
				Kind:      OpUpdate,
				Spec:      spec,
				RecordID:  out.Existing.ID,
				Prior:     out.Existing,
				Rationale: fmt.Sprintf("apex %s points at %q, want %q", spec.Type, out.Existing.Content, spec.Content),
			})
			continue
		}
		if prev := replaced[spec.Type]; len(prev) > 0 && spec.Comment == "" {
			spec.Comment = fmt.Sprintf("Previous apex %s: %s", spec.Type, strings.Join(prev, ","))
		}
		plan.Ops = append(plan.Ops, Operation{
			Kind:      OpCreate,
			Spec:      spec,
			Rationale: fmt.Sprintf("apex %s record for the new target", spec.Type),
		})
	}

	plan.Ops = append(teardown, plan.Ops...)
	return plan
}

// exclusiveWithDesired reports whether existing type t cannot coexist at
// the apex with any of the desired types.
func exclusiveWithDesired(t domain.RecordType, desired map[domain.RecordType]bool) bool {
	switch t {
	case domain.RecordTypeCNAME:
		return desired[domain.RecordTypeA] || desired[domain.RecordTypeAAAA]
	case domain.RecordTypeA, domain.RecordTypeAAAA:
		return desired[domain.RecordTypeCNAME]
	}
	return false
}

// PlanPurge deletes every record of the given types whose name is not in
// the keep list. This is bulk cleanup, named separately from ensure on
// purpose: it is the only planner that removes records the desired set
// never mentions, and every planned removal names the record it takes
// out. Keep-list entries may be relative ("www", "@") or fully
// qualified.
func PlanPurge(zone, zoneID string, types []domain.RecordType, keep []string, actual []domain.Record) *Plan {
	plan := &Plan{Zone: zone, ZoneID: zoneID}

	keepSet := map[string]bool{}
	for _, name := range keep {
		keepSet[strings.ToLower(domain.FQDN(name, zone))] = true
	}
	typeSet := map[domain.RecordType]bool{}
	for _, t := range types {
		typeSet[t] = true
	}

	for i := range actual {
		rec := actual[i]
		if !typeSet[rec.Type] {
			continue
		}
		if keepSet[strings.ToLower(strings.TrimSuffix(rec.Name, "."))] {
			plan.Satisfied++
			continue
		}
		plan.Ops = append(plan.Ops, Operation{
			Kind:      OpDelete,
			RecordID:  rec.ID,
			Prior:     &rec,
			Rationale: fmt.Sprintf("%s %s is not in the keep list", rec.Type, rec.Name),
		})
	}

	return plan
}

// PlanDelete produces a single-delete plan targeting an explicit record
// ID, bypassing matching entirely. rec may be nil when the caller did
// not resolve the record first.
func PlanDelete(zone, zoneID, id string, rec *domain.Record) *Plan {
	op := Operation{
		Kind:      OpDelete,
		RecordID:  id,
		Prior:     rec,
		Rationale: "explicit delete by record id",
	}
	return &Plan{Zone: zone, ZoneID: zoneID, Ops: []Operation{op}}
}
