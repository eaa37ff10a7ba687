package reconcile

import (
	"context"
	"errors"
	"fmt"

	"ffc/zonectl/internal/dns/domain"
)

// Mode selects whether a plan is executed or only enumerated.
type Mode int

const (
	// DryRun enumerates the plan's intended effects and issues zero
	// mutating calls. The default everywhere.
	DryRun Mode = iota

	// Apply issues the mutations.
	Apply
)

func (m Mode) String() string {
	if m == Apply {
		return "apply"
	}
	return "dry-run"
}

// OpStatus is the outcome of one executed (or enumerated) operation.
type OpStatus string

const (
	// StatusPlanned marks an operation enumerated under dry-run.
	StatusPlanned OpStatus = "planned"

	// StatusApplied marks a mutation the provider accepted.
	StatusApplied OpStatus = "applied"

	// StatusNoop marks an operation that turned out to be unnecessary,
	// such as deleting a record that was already gone.
	StatusNoop OpStatus = "noop"

	// StatusFailed marks a mutation the provider rejected.
	StatusFailed OpStatus = "failed"
)

// OpResult pairs an operation with what happened to it.
type OpResult struct {
	Op     Operation
	Status OpStatus

	// After is the provider's view of the record after in a successful
	// create or update.
	After *domain.Record

	// Err is the typed failure for StatusFailed.
	Err error
}

// Report aggregates the outcome of executing one plan.
type Report struct {
	Zone      string
	Mode      Mode
	Results   []OpResult
	Satisfied int
	Warnings  []string

	Created int
	Updated int
	Deleted int
	Noops   int
	Failed  int
}

// Pending counts the operations a dry run would apply.
func (r *Report) Pending() int {
	if r.Mode != DryRun {
		return 0
	}
	return len(r.Results)
}

// Changed counts mutations the provider accepted.
func (r *Report) Changed() int {
	return r.Created + r.Updated + r.Deleted
}

// Summary renders the one-line aggregate the way run output ends.
func (r *Report) Summary() string {
	if r.Mode == DryRun {
		if len(r.Results) == 0 {
			return fmt.Sprintf("%s: nothing to change (%d in place)", r.Zone, r.Satisfied)
		}
		return fmt.Sprintf("%s: %d change(s) needed (dry-run, nothing applied)", r.Zone, len(r.Results))
	}
	if r.Failed > 0 {
		return fmt.Sprintf("%s: %d applied, %d failed", r.Zone, r.Changed(), r.Failed)
	}
	if r.Changed() == 0 {
		return fmt.Sprintf("%s: nothing to change (%d in place)", r.Zone, r.Satisfied)
	}
	return fmt.Sprintf("%s: %d created, %d updated, %d deleted", r.Zone, r.Created, r.Updated, r.Deleted)
}

// Execute runs the plan against the provider. Under DryRun every
// operation is reported as planned and no mutating call is issued; the
// enumerated operations are exactly the ones Apply would dispatch.
//
// Under Apply, operations run sequentially in plan order. A delete whose
// target is already gone is a successful no-op. Transient errors surface
// immediately; execution aborts on the first failed mutation and the
// returned report includes everything up to and including the failure.
func Execute(ctx context.Context, provider domain.Provider, plan *Plan, mode Mode) (*Report, error) {
	report := &Report{
		Zone:      plan.Zone,
		Mode:      mode,
		Satisfied: plan.Satisfied,
		Warnings:  plan.Warnings,
	}

	if mode == DryRun {
		for _, op := range plan.Ops {
			report.Results = append(report.Results, OpResult{Op: op, Status: StatusPlanned})
		}
		return report, nil
	}

	for _, op := range plan.Ops {
		result := applyOp(ctx, provider, plan.ZoneID, op)
		report.Results = append(report.Results, result)

		switch result.Status {
		case StatusNoop:
			report.Noops++
		case StatusFailed:
			report.Failed++
			return report, fmt.Errorf("%s: %w", op.Describe(), result.Err)
		case StatusApplied:
			switch op.Kind {
			case OpCreate:
				report.Created++
			case OpUpdate:
				report.Updated++
			case OpDelete:
				report.Deleted++
			}
		}
	}

	return report, nil
}

// applyOp dispatches one mutation through the provider.
func applyOp(ctx context.Context, provider domain.Provider, zoneID string, op Operation) OpResult {
	switch op.Kind {
	case OpCreate:
		rec, err := provider.CreateRecord(ctx, zoneID, op.Spec)
		if err != nil {
			return OpResult{Op: op, Status: StatusFailed, Err: err}
		}
		return OpResult{Op: op, Status: StatusApplied, After: rec}

	case OpUpdate:
		rec, err := provider.UpdateRecord(ctx, zoneID, op.RecordID, op.Spec)
		if err != nil {
			return OpResult{Op: op, Status: StatusFailed, Err: err}
		}
		return OpResult{Op: op, Status: StatusApplied, After: rec}

	case OpDelete:
		err := provider.DeleteRecord(ctx, zoneID, op.RecordID)
		if errors.Is(err, domain.ErrNotFound) {
			// The record is already gone; the desired end state holds.
			return OpResult{Op: op, Status: StatusNoop}
		}
		if err != nil {
			return OpResult{Op: op, Status: StatusFailed, Err: err}
		}
		return OpResult{Op: op, Status: StatusApplied}
	}

	return OpResult{Op: op, Status: StatusFailed, Err: fmt.Errorf("unknown operation kind %q", op.Kind)}
}
