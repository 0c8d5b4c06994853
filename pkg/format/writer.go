// Package format provides the indentation-aware text sink used by the generator.
package format

import (
	"bytes"
	"io"
	"strings"
)

// DefaultIndentWidth is the number of spaces per indentation level.
const DefaultIndentWidth = 4

// Writer accumulates generated text with an indentation level.
// Indentation is applied lazily, when the first token of a line is written.
type Writer struct {
	output      *bytes.Buffer
	indentWidth int
	depth       int
	atLineStart bool
}

// NewWriter returns an empty writer. A non-positive width selects DefaultIndentWidth.
func NewWriter(indentWidth int) *Writer {
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}
	return &Writer{
		output:      &bytes.Buffer{},
		indentWidth: indentWidth,
		atLineStart: true,
	}
}

// Write appends s to the current line.
func (w *Writer) Write(s string) {
	if s == "" {
		return
	}
	if w.atLineStart {
		w.writeIndent()
	}
	w.output.WriteString(s)
}

// WriteLine appends s and terminates the line.
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.output.WriteByte('\n')
	w.atLineStart = true
}

// Blank terminates the current line, producing an empty line when already at line start.
func (w *Writer) Blank() {
	w.output.WriteByte('\n')
	w.atLineStart = true
}

func (w *Writer) writeIndent() {
	w.output.WriteString(strings.Repeat(" ", w.depth*w.indentWidth))
	w.atLineStart = false
}

// Indent increases the indentation level.
func (w *Writer) Indent() {
	w.depth++
}

// Outdent decreases the indentation level.
func (w *Writer) Outdent() {
	if w.depth > 0 {
		w.depth--
	}
}

// Depth returns the current indentation level.
func (w *Writer) Depth() int {
	return w.depth
}

// OpenBlock writes the block-open token on its own line and indents.
// An empty token only indents.
func (w *Writer) OpenBlock(token string) {
	if token != "" {
		w.WriteLine(token)
	}
	w.Indent()
}

// CloseBlock outdents and writes the block-close token on its own line.
// An empty token only outdents.
func (w *Writer) CloseBlock(token string) {
	w.CloseBlockWith(token, "")
}

// CloseBlockWith outdents and writes the block-close token followed by suffix,
// e.g. "}" + ");" for a multi-line argument.
func (w *Writer) CloseBlockWith(token, suffix string) {
	w.Outdent()
	if token+suffix != "" {
		w.WriteLine(token + suffix)
	}
}

// List writes count items separated by sep on the current line.
func (w *Writer) List(count int, item func(i int) string, sep string) {
	for i := 0; i < count; i++ {
		if i > 0 {
			w.Write(sep)
		}
		w.Write(item(i))
	}
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.output.String()
}

// Bytes returns the accumulated text. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.output.Bytes()
}

// WriteTo copies the accumulated text to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.output.Bytes())
	return int64(n), err
}
