package reporting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsz/specreport/diagnostics"
	"github.com/joshsz/specreport/types"
)

func TestTextRendererStream(t *testing.T) {
	var buf strings.Builder
	renderer := NewTextRenderer(&buf)

	require.NoError(t, renderer.Header(3))
	require.NoError(t, renderer.OpenGroup(types.StructuralOp{Kind: types.OpOpenTop, Depth: 1, Name: "Parser"}))
	require.NoError(t, renderer.Example(ExampleFragment{
		Description: "accepts empty input",
		Outcome:     types.OutcomePassed,
		Duration:    3 * time.Millisecond,
	}))
	require.NoError(t, renderer.OpenGroup(types.StructuralOp{Kind: types.OpOpenNested, Depth: 2, Name: "quoting"}))
	require.NoError(t, renderer.Example(ExampleFragment{
		Description:  "rejects unbalanced quotes",
		Outcome:      types.OutcomeFailed,
		FailureIndex: 1,
		Message:      "expected parse error",
	}))
	require.NoError(t, renderer.CloseGroup(types.StructuralOp{Kind: types.OpClose, Depth: 2}))
	require.NoError(t, renderer.Example(ExampleFragment{
		Description: "handles unicode",
		Outcome:     types.OutcomePending,
		Message:     "needs corpus",
	}))
	require.NoError(t, renderer.CloseGroup(types.StructuralOp{Kind: types.OpClose, Depth: 1}))
	require.NoError(t, renderer.Footer(types.RunSummary{
		Duration:     250 * time.Millisecond,
		ExampleCount: 3,
		FailureCount: 1,
		PendingCount: 1,
	}))

	out := buf.String()
	assert.Contains(t, out, "Running 3 examples")
	assert.Contains(t, out, "Parser\n")
	assert.Contains(t, out, "  ✓ accepts empty input (3ms)")
	assert.Contains(t, out, "  quoting\n")
	assert.Contains(t, out, "    ✗ rejects unbalanced quotes (FAILED - 1)")
	assert.Contains(t, out, "      expected parse error")
	assert.Contains(t, out, "  - handles unicode (PENDING: needs corpus)")
	assert.Contains(t, out, "3 examples, 1 failures, 1 pending")
}

func TestTextRendererDiagnostic(t *testing.T) {
	var buf strings.Builder
	renderer := NewTextRenderer(&buf)

	require.NoError(t, renderer.Example(ExampleFragment{
		Description:  "boom",
		Outcome:      types.OutcomeFailed,
		FailureIndex: 1,
		Diagnostic: &diagnostics.Diagnostic{
			File: "/src/thing.go",
			Line: 9,
			Snippet: []diagnostics.SnippetLine{
				{Number: 8, Text: "a := compute()"},
				{Number: 9, Text: "require.NotNil(t, a)", Offending: true},
			},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "# /src/thing.go:9")
	assert.Contains(t, out, ">    9 | require.NotNil(t, a)")
	assert.Contains(t, out, "     8 | a := compute()")
}

func TestTextRendererPendingFixedLabel(t *testing.T) {
	var buf strings.Builder
	renderer := NewTextRenderer(&buf)

	require.NoError(t, renderer.Example(ExampleFragment{
		Description:  "old bug",
		Outcome:      types.OutcomeFailed,
		FailureIndex: 2,
		PendingFixed: true,
	}))

	assert.Contains(t, buf.String(), "✗ old bug (FIXED - 2)")
}
