// Package specreport consumes lifecycle events emitted by a test-execution
// engine and incrementally renders a hierarchical report document. The core
// is the event-to-document state machine: the stack tracker reconstructs
// group nesting from flat depth values, the timer ledger pairs example
// start/finish events for duration measurement, and the diagnostics extractor
// derives a source-line snippet from a failure's call stack. Rendering is
// delegated entirely to a reporting.Renderer.
package specreport

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/joshsz/specreport/diagnostics"
	"github.com/joshsz/specreport/logging"
	"github.com/joshsz/specreport/metrics"
	"github.com/joshsz/specreport/reporting"
	"github.com/joshsz/specreport/stream"
	"github.com/joshsz/specreport/types"
)

// Session implements the stream.Reporter lifecycle contract.
var _ stream.Reporter = &Session{}

// Session processes one strictly sequential event stream. The driving engine
// delivers callbacks one at a time; if it runs tests in parallel it must
// serialize delivery or give each parallel stream its own session.
type Session struct {
	cfg       *Config
	runID     string
	log       logrus.FieldLogger
	tracker   *Tracker
	ledger    *Ledger
	extractor *diagnostics.Extractor
	renderer  reporting.Renderer
	logSink   logging.Sink

	exampleSeq  int
	failureSeq  int
	failedNames []string
	finished    bool
	summary     types.RunSummary
}

// NewSession creates a session rendering to the given renderer. Counters
// start at zero and are reset only by constructing a new session.
func NewSession(cfg *Config, renderer reporting.Renderer) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}

	extractor, err := diagnostics.NewExtractor(cfg.ExcludePatterns, cfg.SnippetContext)
	if err != nil {
		return nil, fmt.Errorf("failed to create diagnostics extractor: %w", err)
	}

	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	sink := cfg.LogSink
	if sink == nil {
		sink = logging.NewBuffer()
	}

	return &Session{
		cfg:       cfg,
		runID:     uuid.New().String(),
		log:       log,
		tracker:   NewTracker(),
		ledger:    NewLedger(),
		extractor: extractor,
		renderer:  renderer,
		logSink:   sink,
	}, nil
}

// RunID returns the session's unique run identifier.
func (s *Session) RunID() string {
	return s.runID
}

// LogSink returns the per-example capture sink. The engine writes example
// log output here instead of stashing it in global scratch state.
func (s *Session) LogSink() logging.Sink {
	return s.logSink
}

// SessionStarted handles the suite-start event and writes the report header.
func (s *Session) SessionStarted(totalExamples int) error {
	s.log.WithFields(logrus.Fields{
		"run_id": s.runID,
		"total":  totalExamples,
	}).Info("report session started")

	if err := s.renderer.Header(totalExamples); err != nil {
		return NewRuntimeError(fmt.Errorf("failed to render header: %w", err))
	}
	return nil
}

// GroupEntered handles a group-entry event: the tracker computes the close
// and open transitions, and the renderer applies them in order.
func (s *Session) GroupEntered(depth int, description string) error {
	ops, err := s.tracker.GroupEntered(depth, description)
	if err != nil {
		metrics.RecordProtocolViolation(s.runID)
		return err
	}
	return s.applyOps(ops)
}

// ExampleStarted handles an example-start event. Anything sitting in the log
// sink from between examples is dropped so captured output belongs to exactly
// one example.
func (s *Session) ExampleStarted(description string) error {
	s.ledger.Start()
	s.logSink.Drain()
	return nil
}

// ExampleFinished handles a terminal example event. Duration and diagnostics
// are computed identically for every outcome; only the fragment template
// differs. Rendering failures for one example are logged and skipped so that
// subsequent examples are still processed; protocol violations surface.
func (s *Session) ExampleFinished(description string, outcome types.Outcome, failure *types.FailureInfo) error {
	elapsed, err := s.ledger.Stop()
	if err != nil {
		metrics.RecordProtocolViolation(s.runID)
		return err
	}

	s.exampleSeq++
	frag := reporting.ExampleFragment{
		Description: description,
		Outcome:     outcome,
		Sequence:    s.exampleSeq,
		Duration:    elapsed,
		Log:         s.logSink.Drain(),
	}

	switch outcome {
	case types.OutcomeFailed:
		s.failureSeq++
		frag.FailureIndex = s.failureSeq
		s.failedNames = append(s.failedNames, description)

		kind := types.FailureKindExpectation
		if failure != nil {
			kind = failure.Kind
			frag.Message = logging.Clean(failure.Message)
			frag.PendingFixed = failure.IsPendingFixed()
			if diag, ok := s.extractor.Extract(failure.Stack); ok {
				frag.Diagnostic = diag
			}
		}
		metrics.RecordFailure(s.runID, kind)
	case types.OutcomePending:
		if failure != nil {
			frag.Message = logging.Clean(failure.Message)
		}
	}
	metrics.RecordExample(s.runID, outcome)

	if err := s.renderer.Example(frag); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"run_id":  s.runID,
			"example": description,
		}).Error("failed to render example fragment")
	}
	return nil
}

// SessionFinished handles the suite-end event: every still-open group is
// closed, innermost first, and the footer is written. The footer is emitted
// even when structural rendering failed partway, so the document always ends
// with the run totals.
func (s *Session) SessionFinished(summary types.RunSummary) error {
	var firstErr error
	if err := s.applyOps(s.tracker.SuiteFinished()); err != nil {
		s.log.WithError(err).WithField("run_id", s.runID).Error("failed to close open groups")
		firstErr = err
	}

	if n := s.ledger.Len(); n > 0 {
		s.log.WithFields(logrus.Fields{
			"run_id":  s.runID,
			"pending": n,
		}).Warn("session finished with unmatched example starts")
	}

	if err := s.renderer.Footer(summary); err != nil && firstErr == nil {
		firstErr = NewRuntimeError(fmt.Errorf("failed to render footer: %w", err))
	}

	s.finished = true
	s.summary = summary
	metrics.RecordSession(s.runID, summary)

	s.log.WithFields(logrus.Fields{
		"run_id":   s.runID,
		"examples": summary.ExampleCount,
		"failures": summary.FailureCount,
		"pending":  summary.PendingCount,
		"duration": summary.Duration,
	}).Info("report session finished")

	return firstErr
}

// Summary returns the run totals delivered with the session-finished event,
// and whether that event arrived.
func (s *Session) Summary() (types.RunSummary, bool) {
	return s.summary, s.finished
}

// FailedExamples returns the descriptions of failed examples, in order.
func (s *Session) FailedExamples() []string {
	return s.failedNames
}

func (s *Session) applyOps(ops []types.StructuralOp) error {
	for _, op := range ops {
		var err error
		if op.Kind == types.OpClose {
			err = s.renderer.CloseGroup(op)
		} else {
			err = s.renderer.OpenGroup(op)
		}
		if err != nil {
			return NewRuntimeError(fmt.Errorf("failed to render %s op at depth %d: %w", op.Kind, op.Depth, err))
		}
	}
	return nil
}
