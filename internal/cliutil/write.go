// Package cliutil provides small output helpers shared by the CLI commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteTitle writes title underlined with '=' followed by a blank line.
func WriteTitle(w io.Writer, title string) {
	Writef(w, "%s\n%s\n\n", title, strings.Repeat("=", utf8.RuneCountInString(title)))
}
