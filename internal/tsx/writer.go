// Package tsx builds TypeScript source text: an indenting line writer and
// literal and property-key encoders.
package tsx

import (
	"fmt"
	"strings"
)

// Writer builds TypeScript source with two-space indentation.
type Writer struct {
	buf    strings.Builder
	indent int
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Line writes one line at the current indentation. Embedded newlines are
// indented too, so multi-line expressions nest correctly.
func (w *Writer) Line(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	if line == "" {
		w.buf.WriteByte('\n')
		return
	}
	for i, part := range strings.Split(line, "\n") {
		if part == "" && i > 0 {
			w.buf.WriteByte('\n')
			continue
		}
		w.writeIndent()
		w.buf.WriteString(part)
		w.buf.WriteByte('\n')
	}
}

// Raw writes s without indentation or newline.
func (w *Writer) Raw(s string) {
	w.buf.WriteString(s)
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Block writes the line followed by " {" and increases the indentation.
func (w *Writer) Block(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	w.writeIndent()
	w.buf.WriteString(line)
	w.buf.WriteString(" {\n")
	w.indent++
}

// EndBlock decreases the indentation and writes "}".
func (w *Writer) EndBlock() {
	w.EndBlockSuffix("")
}

// EndBlockSuffix closes a block with a suffix, e.g. "});" or " else {".
func (w *Writer) EndBlockSuffix(suffix string) {
	w.Dedent()
	w.writeIndent()
	w.buf.WriteByte('}')
	w.buf.WriteString(suffix)
	w.buf.WriteByte('\n')
}

// Indent increases the indentation level.
func (w *Writer) Indent() {
	w.indent++
}

// Dedent decreases the indentation level.
func (w *Writer) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

// String returns the accumulated source.
func (w *Writer) String() string {
	return w.buf.String()
}

// Len returns the current byte length.
func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.buf.WriteString("  ")
	}
}

// IndentText indents every non-empty line of s by one level.
func IndentText(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n")
}
