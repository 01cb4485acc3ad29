package specreport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsz/specreport/reporting"
	"github.com/joshsz/specreport/types"
)

// recordingRenderer captures every fragment request instead of producing
// output, so session behavior can be asserted without parsing documents.
type recordingRenderer struct {
	headers    []int
	ops        []types.StructuralOp
	examples   []reporting.ExampleFragment
	footers    []types.RunSummary
	exampleErr error
	footerErr  error
}

func (r *recordingRenderer) Header(total int) error {
	r.headers = append(r.headers, total)
	return nil
}

func (r *recordingRenderer) OpenGroup(op types.StructuralOp) error {
	r.ops = append(r.ops, op)
	return nil
}

func (r *recordingRenderer) CloseGroup(op types.StructuralOp) error {
	r.ops = append(r.ops, op)
	return nil
}

func (r *recordingRenderer) Example(frag reporting.ExampleFragment) error {
	r.examples = append(r.examples, frag)
	return r.exampleErr
}

func (r *recordingRenderer) Footer(summary types.RunSummary) error {
	r.footers = append(r.footers, summary)
	return r.footerErr
}

func testConfig() *Config {
	return &Config{
		Output:          "report.html",
		Format:          FormatHTML,
		ExcludePatterns: []string{`/enginecore/`},
		SnippetContext:  2,
	}
}

func newTestSession(t *testing.T) (*Session, *recordingRenderer) {
	t.Helper()
	renderer := &recordingRenderer{}
	session, err := NewSession(testConfig(), renderer)
	require.NoError(t, err)
	return session, renderer
}

func TestNewSessionValidation(t *testing.T) {
	_, err := NewSession(nil, &recordingRenderer{})
	require.Error(t, err)

	_, err = NewSession(testConfig(), nil)
	require.Error(t, err)

	cfg := testConfig()
	cfg.ExcludePatterns = []string{`(bad`}
	_, err = NewSession(cfg, &recordingRenderer{})
	require.Error(t, err)
}

func TestSessionRunIDsAreUnique(t *testing.T) {
	a, _ := newTestSession(t)
	b, _ := newTestSession(t)
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestSessionFullRun(t *testing.T) {
	session, renderer := newTestSession(t)

	require.NoError(t, session.SessionStarted(3))
	require.Equal(t, []int{3}, renderer.headers)

	for _, depth := range []int{1, 2, 3, 2, 1} {
		require.NoError(t, session.GroupEntered(depth, fmt.Sprintf("group at %d", depth)))
	}

	require.NoError(t, session.ExampleStarted("works"))
	require.NoError(t, session.ExampleFinished("works", types.OutcomePassed, nil))

	require.NoError(t, session.ExampleStarted("breaks"))
	require.NoError(t, session.ExampleFinished("breaks", types.OutcomeFailed, &types.FailureInfo{
		Kind:    types.FailureKindExpectation,
		Message: "\x1b[31mexpected 1, got 2\x1b[0m",
	}))

	require.NoError(t, session.ExampleStarted("later"))
	require.NoError(t, session.ExampleFinished("later", types.OutcomePending, &types.FailureInfo{
		Message: "blocked on upstream fix",
	}))

	summary := types.RunSummary{
		Duration:     time.Second,
		ExampleCount: 3,
		FailureCount: 1,
		PendingCount: 1,
	}
	require.NoError(t, session.SessionFinished(summary))

	// Balanced structure: every open matched by exactly one close.
	opens, closes := 0, 0
	for _, op := range renderer.ops {
		if op.Kind == types.OpClose {
			closes++
		} else {
			opens++
		}
	}
	assert.Equal(t, 5, opens)
	assert.Equal(t, 5, closes)

	require.Len(t, renderer.examples, 3)
	assert.Equal(t, 1, renderer.examples[0].Sequence)
	assert.Equal(t, 0, renderer.examples[0].FailureIndex)
	assert.GreaterOrEqual(t, renderer.examples[0].Duration, time.Duration(0))

	assert.Equal(t, 2, renderer.examples[1].Sequence)
	assert.Equal(t, 1, renderer.examples[1].FailureIndex)
	assert.Equal(t, "expected 1, got 2", renderer.examples[1].Message, "ANSI codes must be stripped")

	assert.Equal(t, 3, renderer.examples[2].Sequence)
	assert.Equal(t, 0, renderer.examples[2].FailureIndex)
	assert.Equal(t, "blocked on upstream fix", renderer.examples[2].Message)

	require.Equal(t, []types.RunSummary{summary}, renderer.footers)

	got, finished := session.Summary()
	assert.True(t, finished)
	assert.Equal(t, summary, got)
	assert.Equal(t, []string{"breaks"}, session.FailedExamples())
}

func TestSessionFailureIndexOnlyForFailures(t *testing.T) {
	session, renderer := newTestSession(t)

	for i := 0; i < 2; i++ {
		require.NoError(t, session.ExampleStarted("ok"))
		require.NoError(t, session.ExampleFinished("ok", types.OutcomePassed, nil))
	}
	require.NoError(t, session.ExampleStarted("bad"))
	require.NoError(t, session.ExampleFinished("bad", types.OutcomeFailed, nil))
	require.NoError(t, session.ExampleStarted("worse"))
	require.NoError(t, session.ExampleFinished("worse", types.OutcomeFailed, nil))

	require.Len(t, renderer.examples, 4)
	assert.Equal(t, 0, renderer.examples[0].FailureIndex)
	assert.Equal(t, 0, renderer.examples[1].FailureIndex)
	assert.Equal(t, 1, renderer.examples[2].FailureIndex)
	assert.Equal(t, 2, renderer.examples[3].FailureIndex)
}

func TestSessionStopWithoutStart(t *testing.T) {
	session, renderer := newTestSession(t)

	err := session.ExampleFinished("phantom", types.OutcomePassed, nil)
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.Empty(t, renderer.examples, "no fragment may be rendered from a corrupt duration")
}

func TestSessionDepthJumpSurfacesProtocolError(t *testing.T) {
	session, _ := newTestSession(t)

	require.NoError(t, session.GroupEntered(1, "outer"))
	err := session.GroupEntered(3, "too deep")
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
}

func TestSessionRenderFailureDoesNotStopRun(t *testing.T) {
	renderer := &recordingRenderer{exampleErr: errors.New("disk full")}
	session, err := NewSession(testConfig(), renderer)
	require.NoError(t, err)

	require.NoError(t, session.ExampleStarted("first"))
	require.NoError(t, session.ExampleFinished("first", types.OutcomePassed, nil))
	require.NoError(t, session.ExampleStarted("second"))
	require.NoError(t, session.ExampleFinished("second", types.OutcomePassed, nil))

	require.NoError(t, session.SessionFinished(types.RunSummary{ExampleCount: 2}))
	assert.Len(t, renderer.examples, 2)
	assert.Len(t, renderer.footers, 1, "footer must be emitted even after fragment errors")
}

func TestSessionClassifiesPendingFixed(t *testing.T) {
	session, renderer := newTestSession(t)

	require.NoError(t, session.ExampleStarted("fixed quirk"))
	require.NoError(t, session.ExampleFinished("fixed quirk", types.OutcomeFailed, &types.FailureInfo{
		Kind: types.FailureKindPendingFixed,
	}))

	require.Len(t, renderer.examples, 1)
	assert.True(t, renderer.examples[0].PendingFixed)
	assert.Equal(t, 1, renderer.examples[0].FailureIndex)
}

func TestSessionAttachesDiagnostic(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "user_test.go")
	require.NoError(t, os.WriteFile(source, []byte("l1\nl2\nl3\nl4\nl5\n"), 0644))

	session, renderer := newTestSession(t)

	require.NoError(t, session.ExampleStarted("boom"))
	require.NoError(t, session.ExampleFinished("boom", types.OutcomeFailed, &types.FailureInfo{
		Message: "assertion failed",
		Stack: []types.Frame{
			{File: "/enginecore/expect.go", Line: 100},
			{File: source, Line: 3},
		},
	}))

	require.Len(t, renderer.examples, 1)
	diag := renderer.examples[0].Diagnostic
	require.NotNil(t, diag)
	assert.Equal(t, source, diag.File)
	assert.Equal(t, 3, diag.Line)
	require.Len(t, diag.Snippet, 5)
	assert.True(t, diag.Snippet[2].Offending)
}

func TestSessionNoDiagnosticWhenAllFramesExcluded(t *testing.T) {
	session, renderer := newTestSession(t)

	require.NoError(t, session.ExampleStarted("opaque"))
	require.NoError(t, session.ExampleFinished("opaque", types.OutcomeFailed, &types.FailureInfo{
		Message: "boom",
		Stack:   []types.Frame{{File: "/enginecore/expect.go", Line: 1}},
	}))

	require.Len(t, renderer.examples, 1)
	assert.Nil(t, renderer.examples[0].Diagnostic)
	assert.Equal(t, types.OutcomeFailed, renderer.examples[0].Outcome)
}

func TestSessionCapturesExampleLog(t *testing.T) {
	session, renderer := newTestSession(t)

	require.NoError(t, session.ExampleStarted("chatty"))
	_, err := session.LogSink().Write([]byte("dialing fixture\n"))
	require.NoError(t, err)
	require.NoError(t, session.ExampleFinished("chatty", types.OutcomePassed, nil))

	require.NoError(t, session.ExampleStarted("quiet"))
	require.NoError(t, session.ExampleFinished("quiet", types.OutcomePassed, nil))

	require.Len(t, renderer.examples, 2)
	assert.Equal(t, "dialing fixture\n", renderer.examples[0].Log)
	assert.Equal(t, "", renderer.examples[1].Log, "log capture must not leak across examples")
}

func TestSessionFinishedClosesOpenGroups(t *testing.T) {
	session, renderer := newTestSession(t)

	require.NoError(t, session.GroupEntered(1, "outer"))
	require.NoError(t, session.GroupEntered(2, "inner"))
	require.NoError(t, session.SessionFinished(types.RunSummary{}))

	var closeDepths []int
	for _, op := range renderer.ops {
		if op.Kind == types.OpClose {
			closeDepths = append(closeDepths, op.Depth)
		}
	}
	assert.Equal(t, []int{2, 1}, closeDepths)
}
