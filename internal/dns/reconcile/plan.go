// Package reconcile implements the zone reconciliation engine: classifying
// desired records against a zone's actual state, planning the minimal
// ordered mutation sequence, and executing a plan under a dry-run/apply
// duality.
package reconcile

import (
	"fmt"

	"ffc/zonectl/internal/dns/domain"
)

// OpKind identifies a mutation type within a plan.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// Operation is one planned mutation. Create and Update carry the spec to
// send; Update and Delete carry the target record ID and the prior state
// for reporting.
type Operation struct {
	// Kind is the mutation type.
	Kind OpKind

	// Spec is the record payload for create and update operations. Its
	// Name is fully qualified.
	Spec domain.RecordSpec

	// RecordID is the provider ID targeted by update and delete.
	RecordID string

	// Prior is the record state before the mutation, when known. Nil
	// for creates.
	Prior *domain.Record

	// Rationale is the human-readable reason this operation exists.
	Rationale string
}

// Describe renders the operation the way plan output and logs show it.
func (o Operation) Describe() string {
	switch o.Kind {
	case OpCreate:
		return fmt.Sprintf("create %s", o.Spec)
	case OpUpdate:
		if o.Prior != nil {
			return fmt.Sprintf("update %s %s: %s -> %s", o.Prior.Type, o.Prior.Name, o.Prior.Content, o.Spec.Content)
		}
		return fmt.Sprintf("update %s (id %s)", o.Spec, o.RecordID)
	case OpDelete:
		if o.Prior != nil {
			return fmt.Sprintf("delete %s %s -> %s (id %s)", o.Prior.Type, o.Prior.Name, o.Prior.Content, o.RecordID)
		}
		return fmt.Sprintf("delete record id %s", o.RecordID)
	}
	return string(o.Kind)
}

// Plan is an ordered sequence of operations that moves a zone from its
// actual state toward a desired state. Order is load-bearing: apex
// teardown deletes always precede the creates that replace them.
type Plan struct {
	// Zone is the zone's domain name.
	Zone string

	// ZoneID is the provider-assigned zone identifier all operations
	// target.
	ZoneID string

	// Ops are the mutations, in execution order.
	Ops []Operation

	// Satisfied counts desired specs that needed no operation.
	Satisfied int

	// Warnings carries non-fatal findings from matching, such as
	// duplicate single-slot records.
	Warnings []string
}

// Empty reports whether the plan contains no operations.
func (p *Plan) Empty() bool {
	return len(p.Ops) == 0
}
