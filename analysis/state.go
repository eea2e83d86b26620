package analysis

// JobState identifies where an analysis job is in its lifecycle.
type JobState uint8

const (
	// StateIdle means no job is scheduled or running.
	StateIdle JobState = iota
	// StateScheduled means a job is waiting out the debounce window.
	StateScheduled
	// StateRunning means the worker is computing, or has computed and
	// the completion has not been resolved yet.
	StateRunning
	// StateApplied means the last job's result matched the live
	// document and was installed.
	StateApplied
	// StateSuperseded means the last job's result was stale at apply
	// time and was discarded.
	StateSuperseded
	// StateFailed means the last job's analyzer returned an error.
	StateFailed
)

var stateNames = []string{
	StateIdle:       "idle",
	StateScheduled:  "scheduled",
	StateRunning:    "running",
	StateApplied:    "applied",
	StateSuperseded: "superseded",
	StateFailed:     "failed",
}

// String returns the lowercase name of the state.
func (s JobState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
