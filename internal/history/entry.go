// Package history persists the record mutations zonectl has applied, so
// that past runs can be reviewed and pruned. Only applied runs are
// recorded; dry runs leave no trace.
package history

import "time"

// Outcome values for a recorded mutation.
const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
	OutcomeFailed  = "failed"
)

// Entry is one persisted record mutation.
type Entry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Command    string    `json:"command"`
	Args       string    `json:"args,omitempty"`
	Zone       string    `json:"zone"`
	Op         string    `json:"op"`
	RecordType string    `json:"record_type,omitempty"`
	RecordName string    `json:"record_name,omitempty"`
	Content    string    `json:"content,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
}
