// Package journal provides optional SQLite-based persistence of the
// traffic a run generated: one row per hop, tagged with its session ID,
// depth, and outcome. The journal is an audit log only; the walk never
// reads it back, so it carries no crawl state between runs.
package journal
