package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d files", "Generated", 3)
	assert.Equal(t, "Generated: 3 files", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWritef_WriteError(t *testing.T) {
	assert.NotPanics(t, func() { Writef(failingWriter{}, "lost") })
}

func TestWriteTitle(t *testing.T) {
	var buf bytes.Buffer
	WriteTitle(&buf, "Générer")
	assert.Equal(t, "Générer\n=======\n\n", buf.String())
}
