// Package cliutil holds the output helpers of the oasgen CLI: formatted
// progress lines and document encoding.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// ErrOutput receives the failures Writef cannot return.
var ErrOutput io.Writer = os.Stderr

// Writef writes a usage, summary, or listing line to w. The CLI has no
// recovery for a failed terminal write, so the failure is reported on
// ErrOutput instead of returned.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(ErrOutput, "oasgen: write error: %v\n", err)
	}
}
