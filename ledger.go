package specreport

import "time"

// Ledger is the last-in-first-out stack of start timestamps used to compute
// per-example durations: one push per example start, exactly one pop per
// terminal example event. It is per-session state and is never shared.
type Ledger struct {
	starts []time.Time
	now    func() time.Time
}

// NewLedger creates an empty ledger using the wall clock.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// Start pushes the current time.
func (l *Ledger) Start() {
	l.starts = append(l.starts, l.now())
}

// Stop pops the most recent start and returns the elapsed duration.
// Calling Stop on an empty ledger means the engine delivered a terminal
// event without a matching start; that is surfaced as a ProtocolError.
func (l *Ledger) Stop() (time.Duration, error) {
	if len(l.starts) == 0 {
		return 0, NewProtocolError("example finished with no matching start")
	}
	last := len(l.starts) - 1
	started := l.starts[last]
	l.starts = l.starts[:last]
	return l.now().Sub(started), nil
}

// Len returns the number of starts not yet matched by a stop.
func (l *Ledger) Len() int {
	return len(l.starts)
}
