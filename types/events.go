package types

import "time"

// Outcome represents the terminal state of one example.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomePending Outcome = "pending"
)

// Valid reports whether the outcome is one of the three terminal states.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePassed, OutcomeFailed, OutcomePending:
		return true
	default:
		return false
	}
}

// FailureKind is the declared kind tag of a captured failure. Fragment
// selection keys off this tag, never off the failure message text.
type FailureKind string

const (
	// FailureKindExpectation is an ordinary failed expectation.
	FailureKindExpectation FailureKind = "expectation"
	// FailureKindPendingFixed marks an example that was declared pending
	// but no longer fails.
	FailureKindPendingFixed FailureKind = "pending_fixed"
)

// Frame is one entry of a failure's captured call stack.
type Frame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function,omitempty"`
}

// FailureInfo carries everything the engine captured about a failure.
// For pending examples the engine reuses Message for the pending reason.
type FailureInfo struct {
	Kind    FailureKind `json:"kind,omitempty"`
	Message string      `json:"message,omitempty"`
	Stack   []Frame     `json:"stack,omitempty"`
}

// IsPendingFixed reports whether this failure is the special
// previously-pending, now unexpectedly passing case.
func (f *FailureInfo) IsPendingFixed() bool {
	return f != nil && f.Kind == FailureKindPendingFixed
}

// RunSummary is the aggregate handed over with the session-finished event.
type RunSummary struct {
	Duration     time.Duration
	ExampleCount int
	FailureCount int
	PendingCount int
}

// HasFailures reports whether the run finished with at least one failure.
func (s RunSummary) HasFailures() bool {
	return s.FailureCount > 0
}
