package reporting

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/joshsz/specreport/diagnostics"
	"github.com/joshsz/specreport/types"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

//go:embed assets/report.css assets/report.js
var assetFS embed.FS

// flusher is implemented by buffered writers (e.g. *bufio.Writer).
type flusher interface {
	Flush() error
}

// HTMLRenderer streams an HTML report document: header once, one fragment per
// example, structural open/close fragments interleaved, footer once. Each
// fragment is flushed as soon as it is written.
type HTMLRenderer struct {
	w    io.Writer
	tmpl *template.Template
}

type htmlHeaderData struct {
	Total       int
	GeneratedAt string
	Stylesheet  template.CSS
	Script      template.JS
}

type htmlGroupData struct {
	Name   string
	Anchor string
}

type htmlExampleData struct {
	Description   string
	StatusClass   string
	StatusText    string
	DurationText  string
	FailureIndex  int
	PendingFixed  bool
	Message       string
	Snippet       []diagnostics.SnippetLine
	Location      string
	Log           string
	HasDiagnostic bool
}

type htmlFooterData struct {
	StatusClass  string
	DurationText string
	ExampleCount int
	FailureCount int
	PendingCount int
}

// NewHTMLRenderer parses the embedded fragment templates and returns a
// renderer writing to w. The stylesheet and script assets are loaded once and
// inlined into the header.
func NewHTMLRenderer(w io.Writer) (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML fragment templates: %w", err)
	}
	return &HTMLRenderer{w: w, tmpl: tmpl}, nil
}

// Header writes the document prologue with the inlined assets.
func (r *HTMLRenderer) Header(totalExamples int) error {
	css, err := assetFS.ReadFile("assets/report.css")
	if err != nil {
		return fmt.Errorf("failed to load stylesheet asset: %w", err)
	}
	js, err := assetFS.ReadFile("assets/report.js")
	if err != nil {
		return fmt.Errorf("failed to load script asset: %w", err)
	}
	return r.emit("header", htmlHeaderData{
		Total:       totalExamples,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Stylesheet:  template.CSS(css),
		Script:      template.JS(js),
	})
}

// OpenGroup opens a group container. Top-level groups are standalone blocks;
// nested groups are wrapped in an item of the parent's list.
func (r *HTMLRenderer) OpenGroup(op types.StructuralOp) error {
	name := "open_top"
	if op.Kind == types.OpOpenNested {
		name = "open_nested"
	}
	return r.emit(name, htmlGroupData{Name: op.Name, Anchor: op.Anchor})
}

// CloseGroup closes the container opened at op.Depth.
func (r *HTMLRenderer) CloseGroup(op types.StructuralOp) error {
	closing := "</dl>\n</div>\n"
	if op.Depth > 1 {
		closing = "</dl>\n</div>\n</dd>\n"
	}
	if _, err := io.WriteString(r.w, closing); err != nil {
		return fmt.Errorf("failed to write group close: %w", err)
	}
	return r.flush()
}

// Example writes one example fragment, selecting the template by outcome.
func (r *HTMLRenderer) Example(frag ExampleFragment) error {
	display := getOutcomeDisplay(frag.Outcome, frag.PendingFixed)
	data := htmlExampleData{
		Description:  frag.Description,
		StatusClass:  display.Class,
		StatusText:   display.Text,
		DurationText: formatDuration(frag.Duration),
		FailureIndex: frag.FailureIndex,
		PendingFixed: frag.PendingFixed,
		Message:      frag.Message,
		Log:          frag.Log,
	}
	if frag.Diagnostic != nil {
		data.HasDiagnostic = true
		data.Location = frag.Diagnostic.Location()
		data.Snippet = frag.Diagnostic.Snippet
	}

	name := "example_passed"
	switch frag.Outcome {
	case types.OutcomeFailed:
		name = "example_failed"
	case types.OutcomePending:
		name = "example_pending"
	}
	return r.emit(name, data)
}

// Footer writes the document epilogue with the run totals.
func (r *HTMLRenderer) Footer(summary types.RunSummary) error {
	class := "passed"
	if summary.HasFailures() {
		class = "failed"
	} else if summary.PendingCount > 0 {
		class = "pending"
	}
	return r.emit("footer", htmlFooterData{
		StatusClass:  class,
		DurationText: formatDuration(summary.Duration),
		ExampleCount: summary.ExampleCount,
		FailureCount: summary.FailureCount,
		PendingCount: summary.PendingCount,
	})
}

func (r *HTMLRenderer) emit(name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(r.w, name, data); err != nil {
		return fmt.Errorf("failed to execute fragment template %q: %w", name, err)
	}
	return r.flush()
}

func (r *HTMLRenderer) flush() error {
	if f, ok := r.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
