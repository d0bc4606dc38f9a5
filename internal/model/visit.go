package model

import "time"

// VisitOutcome classifies what a single hop of the random walk did.
type VisitOutcome string

// Visit outcomes recorded in the journal and counted in the summary.
const (
	// OutcomeStepped means the fetched page yielded enough links for the
	// walk to move its frontier onto them.
	OutcomeStepped VisitOutcome = "stepped"

	// OutcomeDeadEnd means the page yielded zero or one accepted links
	// and its URL was removed from the frontier and blacklisted.
	OutcomeDeadEnd VisitOutcome = "dead_end"

	// OutcomeFetchError means the fetch failed at the transport level;
	// handled the same as a dead end.
	OutcomeFetchError VisitOutcome = "fetch_error"
)

// Visit is one fetched URL within a walk. A slice of these is the full
// audit trail of what traffic a session generated.
type Visit struct {
	// SessionID identifies the session iteration (one root fetch plus
	// its walk) the visit belongs to.
	SessionID string `json:"session_id"`

	// URL is the fetched URL.
	URL string `json:"url"`

	// Depth is the hop counter at the time of the fetch. Depth 0 is the
	// first hop out of the root page's links; the root fetch itself is
	// not recorded.
	Depth int `json:"depth"`

	// Outcome classifies what the hop did with the page.
	Outcome VisitOutcome `json:"outcome"`

	// Links is the number of accepted links extracted from the page.
	Links int `json:"links"`

	// Timestamp is when the fetch started.
	Timestamp time.Time `json:"timestamp"`
}

// Summary aggregates a whole run for the end-of-session report.
type Summary struct {
	// StartTime and EndTime bound the run.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Sessions is the number of session iterations started (one per
	// root URL chosen).
	Sessions int `json:"sessions"`

	// Hops is the total number of hops across all walks.
	Hops int `json:"hops"`

	// DeadEnds is the number of hops that ended in remove-and-blacklist.
	DeadEnds int `json:"dead_ends"`

	// FetchErrors is the number of hops whose fetch failed at the
	// transport level.
	FetchErrors int `json:"fetch_errors"`

	// RootErrors is the number of root fetches that failed.
	RootErrors int `json:"root_errors"`

	// BlacklistStart and BlacklistEnd are the blacklist sizes at the
	// start and end of the run. BlacklistEnd >= BlacklistStart always;
	// the blacklist only grows.
	BlacklistStart int `json:"blacklist_start"`
	BlacklistEnd   int `json:"blacklist_end"`

	// TimedOut reports whether the run ended because the session
	// deadline elapsed (as opposed to a signal).
	TimedOut bool `json:"timed_out"`
}

// Elapsed returns the wall-clock duration of the run.
func (s *Summary) Elapsed() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
