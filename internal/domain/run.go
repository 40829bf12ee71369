package domain

import "time"

// RunState enumerates pipeline milestones.
type RunState string

const (
	StateStart      RunState = "start"
	StateSearched   RunState = "searched"
	StateExtracted  RunState = "extracted"
	StateSummarized RunState = "summarized"
	StatePlanned    RunState = "planned"
	StateFulfilling RunState = "fulfilling"
	StateDone       RunState = "done"
	StateFailed     RunState = "failed"
)

// Fulfillment records the outcome of one action item attempt.
type Fulfillment struct {
	Index    int
	Text     string
	Artifact string
	Err      error
}

// Succeeded reports whether the attempt produced an artifact.
func (f Fulfillment) Succeeded() bool {
	return f.Err == nil && f.Artifact != ""
}

// RunReport summarizes one pipeline run. It is logged, never persisted.
type RunReport struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	State         RunState
	Snapshot      string
	SearchResults int
	Articles      int
	Summary       string
	ActionPoints  string
	Fulfillments  []Fulfillment
}

// FulfilledCount returns the number of items that produced an artifact.
func (r RunReport) FulfilledCount() int {
	n := 0
	for _, f := range r.Fulfillments {
		if f.Succeeded() {
			n++
		}
	}
	return n
}
