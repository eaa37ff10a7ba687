package history

import (
	"strings"

	"ffc/zonectl/internal/dns/reconcile"
)

// Recorder writes history entries for the operations of an applied plan.
// It is bound to one CLI invocation: the command path and sanitized
// arguments are stamped onto every entry it saves.
type Recorder struct {
	repo    Repository
	command string
	args    string
}

// NewRecorder builds a Recorder for the given invocation. Args are
// sanitized before storage so credentials never reach disk.
func NewRecorder(repo Repository, command string, args []string) *Recorder {
	return &Recorder{
		repo:    repo,
		command: command,
		args:    strings.Join(SanitizeArgs(args), " "),
	}
}

// RecordReport persists one entry per executed operation in the report.
// Dry runs are not recorded; a report in dry-run mode saves nothing.
// The first save error aborts and is returned; history persistence is
// best-effort and callers typically log rather than fail on it.
func (r *Recorder) RecordReport(report *reconcile.Report) error {
	if report == nil || report.Mode != reconcile.Apply {
		return nil
	}

	for _, res := range report.Results {
		entry := entryForResult(report.Zone, res)
		entry.Command = r.command
		entry.Args = r.args
		if err := r.repo.Save(&entry); err != nil {
			return err
		}
	}
	return nil
}

func entryForResult(zone string, res reconcile.OpResult) Entry {
	entry := Entry{
		Zone:       zone,
		Op:         string(res.Op.Kind),
		RecordType: string(res.Op.Spec.Type),
		RecordName: res.Op.Spec.Name,
		Content:    res.Op.Spec.Content,
		Detail:     res.Op.Rationale,
	}

	// Deletes carry no spec; describe what was removed instead.
	if res.Op.Kind == reconcile.OpDelete && res.Op.Prior != nil {
		entry.RecordType = string(res.Op.Prior.Type)
		entry.RecordName = res.Op.Prior.Name
		entry.Content = res.Op.Prior.Content
	}

	switch res.Status {
	case reconcile.StatusApplied:
		entry.Outcome = OutcomeApplied
	case reconcile.StatusNoop:
		entry.Outcome = OutcomeNoop
	case reconcile.StatusFailed:
		entry.Outcome = OutcomeFailed
		if res.Err != nil {
			entry.Detail = res.Err.Error()
		}
	default:
		entry.Outcome = string(res.Status)
	}

	return entry
}
