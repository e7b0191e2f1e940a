package domain

// RunStatus is the lifecycle state of an assistant run.
type RunStatus string

const (
	RunQueued     RunStatus = "queued"
	RunInProgress RunStatus = "in_progress"
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
	RunCancelled  RunStatus = "cancelled"
	RunExpired    RunStatus = "expired"
)

// Pending reports whether the run is still waiting to finish. Every other
// status is terminal.
func (s RunStatus) Pending() bool {
	return s == RunQueued || s == RunInProgress
}

// Run is one assistant execution attempt against a thread.
type Run struct {
	ID       string    `json:"id"`
	ThreadID string    `json:"thread_id"`
	Status   RunStatus `json:"status"`
}
