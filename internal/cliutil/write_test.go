package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "Generated %s: %d paths\n", "default", 3)
	assert.Equal(t, "Generated default: 3 paths\n", buf.String())
}

func TestWritefReportsWriteErrors(t *testing.T) {
	var errs bytes.Buffer
	prev := ErrOutput
	ErrOutput = &errs
	t.Cleanup(func() { ErrOutput = prev })

	Writef(failingWriter{}, "Usage: oasgen generate [flags]\n")
	assert.Equal(t, "oasgen: write error: pipe closed\n", errs.String())
}
