package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and identify exactly what is
// wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoRootURLs is returned when the configuration has no seed URLs.
	// Without at least one root the session loop has nowhere to start.
	ErrNoRootURLs = errors.New("no root URLs configured: set root_urls in the config file")

	// ErrNoUserAgents is returned when the user-agent pool is empty.
	// Every request must carry a user-agent drawn from the pool.
	ErrNoUserAgents = errors.New("no user agents configured: set user_agents in the config file")

	// ErrInvalidMaxDepth is returned when max_depth is not positive.
	// A non-positive depth would dead-end every walk before its first hop.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be positive")

	// ErrInvalidSleepRange is returned when the pacing delay bounds are
	// negative or inverted (max_sleep < min_sleep).
	ErrInvalidSleepRange = errors.New("invalid sleep range: need 0 <= min_sleep <= max_sleep")

	// ErrInvalidRequestTimeout is returned when the per-fetch timeout is
	// not positive. A zero timeout would fail every request immediately.
	ErrInvalidRequestTimeout = errors.New("invalid request timeout: must be positive")

	// ErrInvalidTimeout is returned when the session deadline is negative.
	// Use zero for an unbounded session.
	ErrInvalidTimeout = errors.New("invalid session timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the body size cap is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidRequestRate is returned when the request rate cap is negative.
	// Use zero to disable the cap.
	ErrInvalidRequestRate = errors.New("invalid request rate: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one summary format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
