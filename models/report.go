package models

import "time"

// SyncReport summarizes one sync cycle. The orchestrator always returns a
// report, even for aborted or failed cycles — callers can rely on the counts
// and on the guarantee that local data is never deleted or reverted on
// failure.
type SyncReport struct {
	// Pushed is the number of records the server accepted from this client.
	Pushed int `json:"pushed"`

	// PushFailed counts records rejected or lost during the push phase,
	// conflicts included.
	PushFailed int `json:"push_failed"`

	// Pulled counts remote records inserted or overwritten locally.
	Pulled int `json:"pulled"`

	// Conflicts counts version conflicts detected in either phase. Conflicted
	// records keep their local state and are never retried automatically.
	Conflicts int `json:"conflicts"`

	// Offline is set when no remote endpoint is configured; the cycle is a
	// successful no-op.
	Offline bool `json:"offline"`

	// Unreachable is set when the health check failed and the cycle aborted
	// before pushing or pulling anything.
	Unreachable bool `json:"unreachable"`

	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}
