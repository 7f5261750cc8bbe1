// Package runlog records every state transition of a place-order run.
//
// Each run appends rows to an audit trail keyed by the order id. A row carries
// the trace id of the span that was active when it was written, so a failed
// order can be followed from the log straight into its distributed trace.
package runlog

import "time"

// Status is the lifecycle state of a run at the time an entry was written.
type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusStageDone Status = "STAGE_DONE"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Entry is one row of the run log.
type Entry struct {
	// RunID is the order id, or a generated id when the request carried none.
	RunID string

	Status Status

	// Stage is the name of the stage that just finished or failed. Empty on
	// STARTED and COMPLETED rows.
	Stage string

	// Payload is the JSON request that started the run. Only set on STARTED.
	Payload string

	// ErrorMessages is a JSON array of failure details.
	ErrorMessages string

	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
