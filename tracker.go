package specreport

import "github.com/joshsz/specreport/types"

// Tracker reconstructs the open-group nesting structure from the flat stream
// of group-entry events. It is a finite-state reducer over a single depth
// value: each call compares the incoming depth against the previous one and
// emits the close/open transitions that reconcile them. One tracker instance
// processes one strictly sequential event stream.
type Tracker struct {
	prev int
}

// NewTracker creates a tracker with no open groups.
func NewTracker() *Tracker {
	return &Tracker{}
}

// GroupEntered records entry of a group at the given ancestor depth (1-based,
// counting the group itself) and returns the structural transitions the
// renderer must apply: zero or more CLOSE ops for previously-open sibling or
// ancestor groups, innermost first, followed by exactly one OPEN op.
//
// A depth below 1, or one that jumps forward by more than one level, violates
// the nesting invariant and returns a ProtocolError rather than guessing.
func (t *Tracker) GroupEntered(depth int, name string) ([]types.StructuralOp, error) {
	if depth < 1 {
		return nil, NewProtocolError("group depth must be >= 1, got %d", depth)
	}
	if depth > t.prev+1 {
		return nil, NewProtocolError("group depth jumped from %d to %d", t.prev, depth)
	}

	ops := make([]types.StructuralOp, 0, t.prev-depth+2)
	for d := t.prev; d >= depth; d-- {
		ops = append(ops, types.StructuralOp{Kind: types.OpClose, Depth: d})
	}

	kind := types.OpOpenNested
	if depth == 1 {
		kind = types.OpOpenTop
	}
	ops = append(ops, types.StructuralOp{
		Kind:   kind,
		Depth:  depth,
		Name:   name,
		Anchor: types.AnchorID(name),
	})

	t.prev = depth
	return ops, nil
}

// SuiteFinished closes every group still open, innermost first, leaving the
// stack empty. This guarantees every OPEN is eventually matched by exactly
// one CLOSE.
func (t *Tracker) SuiteFinished() []types.StructuralOp {
	ops := make([]types.StructuralOp, 0, t.prev)
	for d := t.prev; d >= 1; d-- {
		ops = append(ops, types.StructuralOp{Kind: types.OpClose, Depth: d})
	}
	t.prev = 0
	return ops
}

// Depth returns the number of currently open groups.
func (t *Tracker) Depth() int {
	return t.prev
}
