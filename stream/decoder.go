// Package stream decodes the host engine's serialized lifecycle event stream
// (JSON Lines, one envelope per event) and drives a Reporter with it.
package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/joshsz/specreport/types"
)

// Event stream actions.
const (
	ActionSessionStart    = "session_start"
	ActionGroup           = "group"
	ActionExampleStart    = "example_start"
	ActionExampleFinished = "example_finished"
	ActionSessionFinish   = "session_finish"
)

// Reporter is the set of lifecycle callbacks a decoded event stream drives.
// It is implemented by specreport.Session.
type Reporter interface {
	SessionStarted(totalExamples int) error
	GroupEntered(depth int, description string) error
	ExampleStarted(description string) error
	ExampleFinished(description string, outcome types.Outcome, failure *types.FailureInfo) error
	SessionFinished(summary types.RunSummary) error
}

// Envelope is one JSON line of the engine's event stream.
type Envelope struct {
	Action      string             `json:"action"`
	Total       int                `json:"total,omitempty"`
	Depth       int                `json:"depth,omitempty"`
	Description string             `json:"description,omitempty"`
	Outcome     types.Outcome      `json:"outcome,omitempty"`
	Failure     *types.FailureInfo `json:"failure,omitempty"`

	// session_finish fields
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	ExampleCount    int     `json:"example_count,omitempty"`
	FailureCount    int     `json:"failure_count,omitempty"`
	PendingCount    int     `json:"pending_count,omitempty"`
}

// Decoder reads JSON-lines lifecycle events from an input stream.
type Decoder struct {
	r   io.Reader
	log logrus.FieldLogger
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader, log logrus.FieldLogger) *Decoder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Decoder{r: r, log: log}
}

// Run decodes envelopes until EOF, dispatching each to the reporter. A
// malformed line or a callback error stops the run; unknown actions are
// skipped so newer engines can add events without breaking older reporters.
func (d *Decoder) Run(rep Reporter) error {
	scanner := bufio.NewScanner(d.r)
	// Failure messages and captured logs can make single events large.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			return fmt.Errorf("line %d: failed to decode event: %w", lineNo, err)
		}
		if err := d.dispatch(rep, env); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read event stream: %w", err)
	}
	return nil
}

func (d *Decoder) dispatch(rep Reporter, env Envelope) error {
	switch env.Action {
	case ActionSessionStart:
		return rep.SessionStarted(env.Total)
	case ActionGroup:
		return rep.GroupEntered(env.Depth, env.Description)
	case ActionExampleStart:
		return rep.ExampleStarted(env.Description)
	case ActionExampleFinished:
		return rep.ExampleFinished(env.Description, env.Outcome, env.Failure)
	case ActionSessionFinish:
		return rep.SessionFinished(types.RunSummary{
			Duration:     time.Duration(env.DurationSeconds * float64(time.Second)),
			ExampleCount: env.ExampleCount,
			FailureCount: env.FailureCount,
			PendingCount: env.PendingCount,
		})
	default:
		d.log.WithField("action", env.Action).Debug("skipping unknown event action")
		return nil
	}
}
