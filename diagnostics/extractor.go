// Package diagnostics derives source-line failure context from captured
// call stacks: it filters out frames belonging to the test framework itself
// and excerpts the source around the first user-relevant frame.
package diagnostics

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joshsz/specreport/types"
)

// DefaultContextLines is the default snippet radius around the anchor line.
const DefaultContextLines = 2

// SnippetLine is one rendered line of a source excerpt.
type SnippetLine struct {
	Number    int
	Text      string
	Offending bool
}

// Diagnostic locates the first non-framework frame of a failure and a short
// source excerpt around it. It is derived fresh per failure event and has no
// independent lifecycle.
type Diagnostic struct {
	File    string
	Line    int
	Snippet []SnippetLine
}

// Location returns the anchor as a file:line string.
func (d *Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d", d.File, d.Line)
}

// Extractor filters call stacks by configurable exclusion patterns and reads
// source context around the surviving anchor frame. The patterns are
// configuration rather than constants because the set of framework-internal
// paths varies by toolchain version.
type Extractor struct {
	exclude  []*regexp.Regexp
	context  int
	readFile func(string) ([]byte, error)
}

// NewExtractor compiles the exclusion patterns and returns an extractor with
// the given snippet radius (DefaultContextLines when non-positive).
func NewExtractor(patterns []string, contextLines int) (*Extractor, error) {
	exclude := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		exclude = append(exclude, re)
	}
	if contextLines <= 0 {
		contextLines = DefaultContextLines
	}
	return &Extractor{
		exclude:  exclude,
		context:  contextLines,
		readFile: os.ReadFile,
	}, nil
}

// Extract returns the diagnostic for the first frame not matched by any
// exclusion pattern. If every frame is excluded (or the stack is empty) it
// returns ok=false; the report still renders, just without a diagnostic.
func (e *Extractor) Extract(stack []types.Frame) (*Diagnostic, bool) {
	for _, frame := range stack {
		if frame.File == "" || e.excluded(frame) {
			continue
		}
		return &Diagnostic{
			File:    frame.File,
			Line:    frame.Line,
			Snippet: e.snippet(frame.File, frame.Line),
		}, true
	}
	return nil, false
}

func (e *Extractor) excluded(frame types.Frame) bool {
	for _, re := range e.exclude {
		if re.MatchString(frame.File) {
			return true
		}
		if frame.Function != "" && re.MatchString(frame.Function) {
			return true
		}
	}
	return false
}

// snippet reads a window of source lines centered on the anchor line, with
// the offending line flagged. An unreadable or moved source file degrades to
// an empty snippet; a report must never fail to render because of one.
func (e *Extractor) snippet(file string, line int) []SnippetLine {
	data, err := e.readFile(file)
	if err != nil {
		return nil
	}

	lines := strings.Split(string(data), "\n")
	if line < 1 || line > len(lines) {
		return nil
	}

	lo := line - e.context
	if lo < 1 {
		lo = 1
	}
	hi := line + e.context
	if hi > len(lines) {
		hi = len(lines)
	}

	out := make([]SnippetLine, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, SnippetLine{
			Number:    n,
			Text:      lines[n-1],
			Offending: n == line,
		})
	}
	return out
}
