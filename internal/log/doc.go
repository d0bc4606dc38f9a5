// Package log provides logging construction for zatsuon, built on top of
// the standard slog package.
//
// The TrimHandler truncates oversized string attribute values before they
// reach the underlying text or JSON handler. The random walk logs a URL on
// every hop, and real-world pages carry hrefs of arbitrary length, so the
// trim keeps per-hop log lines bounded regardless of what the walk visits.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	slog.SetDefault(logger)
package log
