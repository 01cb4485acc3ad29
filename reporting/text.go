package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshsz/specreport/types"
)

// TextRenderer streams a plain-text report with indentation reflecting group
// nesting. It honors the same contract as the HTML renderer: header once, one
// line (plus failure details) per example, footer once, flush after each
// fragment.
type TextRenderer struct {
	w     io.Writer
	depth int
}

// NewTextRenderer creates a text renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Header writes the run preamble.
func (r *TextRenderer) Header(totalExamples int) error {
	_, err := fmt.Fprintf(r.w, "Running %d examples\n\n", totalExamples)
	if err != nil {
		return err
	}
	return r.flush()
}

// OpenGroup writes the group label at its nesting indentation.
func (r *TextRenderer) OpenGroup(op types.StructuralOp) error {
	r.depth = op.Depth
	if _, err := fmt.Fprintf(r.w, "%s%s\n", r.indent(op.Depth-1), op.Name); err != nil {
		return err
	}
	return r.flush()
}

// CloseGroup pops one indentation level. Text output needs no close marker.
func (r *TextRenderer) CloseGroup(op types.StructuralOp) error {
	r.depth = op.Depth - 1
	return nil
}

// Example writes one example line, with failure details indented below it.
func (r *TextRenderer) Example(frag ExampleFragment) error {
	indent := r.indent(r.depth)

	var line string
	switch frag.Outcome {
	case types.OutcomePassed:
		line = fmt.Sprintf("%s✓ %s (%s)", indent, frag.Description, formatDuration(frag.Duration))
	case types.OutcomeFailed:
		label := "FAILED"
		if frag.PendingFixed {
			label = "FIXED"
		}
		line = fmt.Sprintf("%s✗ %s (%s - %d)", indent, frag.Description, label, frag.FailureIndex)
	case types.OutcomePending:
		reason := ""
		if frag.Message != "" {
			reason = ": " + frag.Message
		}
		line = fmt.Sprintf("%s- %s (PENDING%s)", indent, frag.Description, reason)
	default:
		line = fmt.Sprintf("%s? %s", indent, frag.Description)
	}
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return err
	}

	if frag.Outcome == types.OutcomeFailed {
		detail := r.indent(r.depth + 1)
		if frag.Message != "" {
			for _, l := range strings.Split(frag.Message, "\n") {
				if _, err := fmt.Fprintf(r.w, "%s%s\n", detail, l); err != nil {
					return err
				}
			}
		}
		if frag.Diagnostic != nil {
			if _, err := fmt.Fprintf(r.w, "%s# %s\n", detail, frag.Diagnostic.Location()); err != nil {
				return err
			}
			for _, sl := range frag.Diagnostic.Snippet {
				marker := " "
				if sl.Offending {
					marker = ">"
				}
				if _, err := fmt.Fprintf(r.w, "%s%s %4d | %s\n", detail, marker, sl.Number, sl.Text); err != nil {
					return err
				}
			}
		}
	}

	return r.flush()
}

// Footer writes the run totals.
func (r *TextRenderer) Footer(summary types.RunSummary) error {
	pending := ""
	if summary.PendingCount > 0 {
		pending = fmt.Sprintf(", %d pending", summary.PendingCount)
	}
	_, err := fmt.Fprintf(r.w, "\nFinished in %s\n%d examples, %d failures%s\n",
		formatDuration(summary.Duration), summary.ExampleCount, summary.FailureCount, pending)
	if err != nil {
		return err
	}
	return r.flush()
}

func (r *TextRenderer) indent(level int) string {
	if level < 0 {
		level = 0
	}
	return strings.Repeat("  ", level)
}

func (r *TextRenderer) flush() error {
	if f, ok := r.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
