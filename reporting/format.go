package reporting

import (
	"fmt"
	"time"

	"github.com/joshsz/specreport/types"
)

// OutcomeDisplay represents display information for an example outcome
type OutcomeDisplay struct {
	Text  string // Human-readable outcome text
	Class string // CSS class or style identifier
}

// getOutcomeDisplay returns human-readable outcome text and CSS class
func getOutcomeDisplay(outcome types.Outcome, pendingFixed bool) OutcomeDisplay {
	switch outcome {
	case types.OutcomePassed:
		return OutcomeDisplay{Text: "PASS", Class: "passed"}
	case types.OutcomeFailed:
		if pendingFixed {
			return OutcomeDisplay{Text: "FIXED", Class: "pending_fixed"}
		}
		return OutcomeDisplay{Text: "FAIL", Class: "failed"}
	case types.OutcomePending:
		return OutcomeDisplay{Text: "PENDING", Class: "pending"}
	default:
		return OutcomeDisplay{Text: "UNKNOWN", Class: "unknown"}
	}
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Millisecond).String()
}
