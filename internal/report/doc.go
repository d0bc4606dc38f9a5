// Package report renders the end-of-run session summary in
// human-readable text, JSON, or Markdown format.
package report
