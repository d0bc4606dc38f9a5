package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zatsuon-dev/zatsuon/internal/model"
)

// timeRounding keeps elapsed times readable; sub-second precision adds
// nothing to a summary of a minutes-long run.
const timeRounding = time.Second

// SimpleWriter outputs the human-readable text summary.
// Plain text with ASCII formatting works in all terminals and pipes
// cleanly to files; the summary is small enough that nothing fancier
// is warranted.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary as plain text.
func (w *SimpleWriter) Write(summary *model.Summary) (int, error) {
	var b strings.Builder

	b.WriteString("zatsuon session summary\n")
	b.WriteString(strings.Repeat("=", 23) + "\n\n")

	fmt.Fprintf(&b, "  started:          %s\n", summary.StartTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "  elapsed:          %s\n", summary.Elapsed().Round(timeRounding))
	fmt.Fprintf(&b, "  ended by:         %s\n", endedBy(summary))
	b.WriteString("\n")

	fmt.Fprintf(&b, "  roots visited:    %d (%d unreachable)\n", summary.Sessions, summary.RootErrors)
	fmt.Fprintf(&b, "  hops:             %d\n", summary.Hops)
	fmt.Fprintf(&b, "  dead ends:        %d\n", summary.DeadEnds)
	fmt.Fprintf(&b, "  fetch errors:     %d\n", summary.FetchErrors)
	fmt.Fprintf(&b, "  blacklist growth: %d -> %d\n", summary.BlacklistStart, summary.BlacklistEnd)

	return io.WriteString(w.output, b.String())
}

// endedBy describes what terminated the run.
func endedBy(summary *model.Summary) string {
	if summary.TimedOut {
		return "session deadline"
	}
	return "interrupt"
}
