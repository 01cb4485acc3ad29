// Package reporting turns structural ops and computed example facts into
// document fragments on an append-only output stream. All presentation logic
// lives here, behind the Renderer interface, so the core state machine has
// zero presentation dependencies and is independently testable.
package reporting

import (
	"time"

	"github.com/joshsz/specreport/diagnostics"
	"github.com/joshsz/specreport/types"
)

// ExampleFragment carries the computed facts for one rendered example.
type ExampleFragment struct {
	Description string
	Outcome     types.Outcome
	Sequence    int // 1-based example index within the session
	// FailureIndex is the 1-based failure index; zero unless the example failed.
	FailureIndex int
	Duration     time.Duration
	// PendingFixed selects the previously-pending, now unexpectedly passing
	// fragment template instead of the ordinary failure one.
	PendingFixed bool
	Message      string
	Diagnostic   *diagnostics.Diagnostic
	Log          string // log output captured while the example ran
}

// Renderer appends document fragments to the output stream, one per event.
// Implementations flush after each fragment so that a crash mid-run leaves a
// valid, truncated-but-consistent partial document.
type Renderer interface {
	// Header writes the one-time document prologue.
	Header(totalExamples int) error
	// OpenGroup opens a group container. op.Kind distinguishes a top-level
	// container from one nested inside its parent's item list.
	OpenGroup(op types.StructuralOp) error
	// CloseGroup closes the most recently opened group container.
	CloseGroup(op types.StructuralOp) error
	// Example writes one example fragment.
	Example(frag ExampleFragment) error
	// Footer writes the one-time document epilogue.
	Footer(summary types.RunSummary) error
}
