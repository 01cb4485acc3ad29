package types

import (
	"regexp"
	"strings"
)

// OpKind identifies a structural transition in the rendered document.
type OpKind int

const (
	// OpOpenTop opens a top-level group container (depth 1).
	OpOpenTop OpKind = iota
	// OpOpenNested opens a group container nested inside its parent's item.
	OpOpenNested
	// OpClose closes the most recently opened group container.
	OpClose
)

// String returns a human-readable name for the op kind.
func (k OpKind) String() string {
	switch k {
	case OpOpenTop:
		return "open-top"
	case OpOpenNested:
		return "open-nested"
	case OpClose:
		return "close"
	default:
		return "unknown"
	}
}

// StructuralOp is one open or close transition emitted by the stack tracker.
// Close ops carry the depth of the group being closed so renderers can tell
// a top-level container apart from a nested one.
type StructuralOp struct {
	Kind   OpKind
	Depth  int
	Name   string // group display label, open ops only
	Anchor string // stable anchor key derived from Name, open ops only
}

var anchorUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// AnchorID derives a stable document anchor key from a group name.
func AnchorID(name string) string {
	id := anchorUnsafe.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(id, "_")
}
