// Package logging provides the per-example log capture sink. The sink is
// injected into the reporting session and drained on each terminal example
// event, so captured output travels with the callback instead of through
// hidden global state.
package logging

import (
	"bytes"

	"github.com/acarl005/stripansi"
)

// Sink receives log output written while one example runs. Drain returns
// everything captured since the previous drain and resets the sink.
type Sink interface {
	Write(p []byte) (n int, err error)
	Drain() string
}

// Buffer is an in-memory Sink. Drained text has ANSI escape sequences
// stripped so colored engine output stays readable inside the report.
type Buffer struct {
	buf bytes.Buffer
}

// NewBuffer creates an empty capture buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Write appends captured log output.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// Drain returns the captured text, cleaned, and resets the buffer.
func (b *Buffer) Drain() string {
	s := Clean(b.buf.String())
	b.buf.Reset()
	return s
}

// Discard is a Sink that keeps nothing.
type Discard struct{}

// Write drops the input.
func (Discard) Write(p []byte) (int, error) {
	return len(p), nil
}

// Drain always returns the empty string.
func (Discard) Drain() string {
	return ""
}

// Clean strips ANSI escape sequences from s.
func Clean(s string) string {
	return stripansi.Strip(s)
}
