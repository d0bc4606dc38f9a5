package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/zatsuon-dev/zatsuon/internal/model"
)

// MarkdownWriter outputs the summary in GitHub Flavored Markdown,
// suitable for pasting into documentation or an operations log.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary as Markdown.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("zatsuon Session Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", summary.StartTime.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", summary.Elapsed().Round(timeRounding).String()},
			{"Ended by", endedBy(summary)},
		},
	})
	md.PlainText("")

	md.H2("Traffic")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Counter", "Count"},
		Rows: [][]string{
			{"Roots visited", strconv.Itoa(summary.Sessions)},
			{"Unreachable roots", strconv.Itoa(summary.RootErrors)},
			{"Hops", strconv.Itoa(summary.Hops)},
			{"Dead ends", strconv.Itoa(summary.DeadEnds)},
			{"Fetch errors", strconv.Itoa(summary.FetchErrors)},
			{"Blacklist growth", strconv.Itoa(summary.BlacklistStart) + " → " + strconv.Itoa(summary.BlacklistEnd)},
		},
	})

	return len(md.String()), md.Build()
}
