package walk

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zatsuon-dev/zatsuon/internal/extract"
	"github.com/zatsuon-dev/zatsuon/internal/fetcher"
	"github.com/zatsuon-dev/zatsuon/internal/model"
)

// Session is the outer driver of the decoy traffic run. Each iteration
// picks a root URL at random, fetches it, seeds the frontier from its
// links, and hands control to the Walker; when the walk dead-ends, the
// next iteration starts from a fresh root. The session ends when the
// configured deadline elapses or the context is cancelled.
type Session struct {
	// rootURLs is the pool of seed URLs.
	rootURLs []string

	// fetcher performs the root fetches and is shared with the Walker.
	fetcher Fetcher

	// blacklist is shared across all walks of the session; dead ends
	// found in one walk stay blacklisted for all later ones.
	blacklist *extract.Blacklist

	// timeout is the session deadline measured from Run start.
	// Zero means the session runs until the context is cancelled.
	timeout time.Duration

	// walkOpts configure the Walker created for the run.
	walkOpts []Option

	// rand drives root selection; the Walker holds its own source.
	rand *rand.Rand

	// logger records session-level events.
	logger *slog.Logger

	// observe, when set, receives every hop record in addition to the
	// session's own statistics bookkeeping.
	observe func(model.Visit)

	// stats accumulates run counters. Guarded by a mutex because the
	// periodic stats reporter reads it from another goroutine; the
	// walk state itself stays single-flow.
	stats Stats

	// startTime and timedOut feed the final summary.
	startTime time.Time
	timedOut  bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionTimeout sets the session deadline, measured from the start
// of Run. Zero means unbounded.
func WithSessionTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithSessionRand sets the random source for root selection.
func WithSessionRand(r *rand.Rand) SessionOption {
	return func(s *Session) {
		s.rand = r
	}
}

// WithSessionLogger sets the session logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithVisitObserver sets a callback invoked for every hop of every walk.
func WithVisitObserver(fn func(model.Visit)) SessionOption {
	return func(s *Session) {
		s.observe = fn
	}
}

// WithWalkOptions appends options for the Walker the session drives.
func WithWalkOptions(opts ...Option) SessionOption {
	return func(s *Session) {
		s.walkOpts = append(s.walkOpts, opts...)
	}
}

// NewSession creates a Session over the given root URL pool.
// blacklist seeds the run's blacklist; the session copies it, so the
// caller's slice is never mutated as dead ends accumulate.
func NewSession(rootURLs []string, f Fetcher, blacklist []string, opts ...SessionOption) *Session {
	s := &Session{
		rootURLs:  rootURLs,
		fetcher:   f,
		blacklist: extract.NewBlacklist(blacklist),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stats.blacklistStart = s.blacklist.Len()
	return s
}

// Run drives session iterations until a terminal condition and returns
// nil for every graceful ending: deadline elapsed, context cancelled.
//
// Failure classification per iteration, in order:
//  1. TimedOut from the walk ends the run. This is checked before any
//     other handling so nothing can swallow the termination signal.
//  2. An oversized page (resource exhaustion) is logged and the run
//     moves to the next root.
//  3. Context cancellation ends the run quietly.
//  4. Anything else is logged and the run moves to the next root; one
//     anomalous page must never end the whole session.
func (s *Session) Run(ctx context.Context) error {
	s.startTime = time.Now()

	var deadline time.Time
	if s.timeout > 0 {
		deadline = s.startTime.Add(s.timeout)
	}

	walker := NewWalker(s.fetcher, s.blacklist,
		append([]Option{
			WithDeadline(deadline),
			WithLogger(s.logger),
			WithObserver(s.recordVisit),
		}, s.walkOpts...)...)

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("session cancelled")
			return nil
		}

		// The walk polls the deadline per hop, but a run whose roots all
		// fail would otherwise loop here forever; the session enforces
		// the deadline between iterations as well.
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			s.logger.Info("session deadline exceeded, exiting")
			s.timedOut = true
			return nil
		}

		sessionID := uuid.NewString()
		root := s.rootURLs[s.rand.Intn(len(s.rootURLs))]
		s.logger.Info("starting from root", "session", sessionID, "root", root)
		s.stats.addSession()

		body, err := s.fetcher.Fetch(ctx, root)
		if err != nil {
			s.stats.addRootError()
			switch {
			case errors.Is(err, fetcher.ErrBodyTooLarge):
				s.logger.Warn("root content is exhausting the memory limit", "root", root)
			case ctx.Err() != nil:
				s.logger.Info("session cancelled")
				return nil
			default:
				s.logger.Warn("error connecting to root", "root", root, "error", err)
			}
			continue
		}

		frontier := extract.FilterLinks(extract.Links(body, root), s.blacklist)
		s.logger.Debug("seeded frontier", "session", sessionID, "root", root, "links", len(frontier))

		outcome, err := walker.Walk(ctx, sessionID, frontier)

		// TimedOut first: a later catch-all must never swallow the one
		// signal that ends the run on schedule.
		if outcome == TimedOut {
			s.logger.Info("session deadline exceeded, exiting")
			s.timedOut = true
			return nil
		}

		if err != nil {
			switch {
			case errors.Is(err, fetcher.ErrBodyTooLarge):
				s.logger.Warn("page content is exhausting the memory limit, moving to next root")
			case ctx.Err() != nil:
				s.logger.Info("session cancelled")
				return nil
			default:
				s.logger.Error("walk failed, moving to next root", "error", err)
			}
			continue
		}

		// DeadEnd: normal end of one walk, start over from a new root.
		s.logger.Debug("hit a dead end, moving to the next root", "session", sessionID)
	}
}

// recordVisit updates the run counters and forwards the hop record to
// the configured observer.
func (s *Session) recordVisit(v model.Visit) {
	s.stats.addVisit(v)
	if s.observe != nil {
		s.observe(v)
	}
}

// Stats returns a snapshot of the run counters. Safe to call from
// another goroutine while the session runs: the snapshot derives the
// blacklist size from the counters rather than reading the blacklist,
// which stays owned by the session flow.
func (s *Session) Stats() StatsSnapshot {
	return s.stats.snapshot()
}

// Summary builds the end-of-run summary. Call after Run returns.
func (s *Session) Summary() model.Summary {
	snap := s.stats.snapshot()
	return model.Summary{
		StartTime:      s.startTime,
		EndTime:        time.Now(),
		Sessions:       snap.Sessions,
		Hops:           snap.Hops,
		DeadEnds:       snap.DeadEnds,
		FetchErrors:    snap.FetchErrors,
		RootErrors:     snap.RootErrors,
		BlacklistStart: snap.BlacklistStart,
		BlacklistEnd:   snap.BlacklistEnd,
		TimedOut:       s.timedOut,
	}
}

// Stats accumulates run counters behind a mutex. Only the counters are
// shared with the stats reporter goroutine; the frontier and blacklist
// remain owned by the single session flow.
type Stats struct {
	mu             sync.Mutex
	sessions       int
	hops           int
	deadEnds       int
	fetchErrors    int
	rootErrors     int
	blacklistStart int
}

// StatsSnapshot is a point-in-time copy of the run counters.
type StatsSnapshot struct {
	Sessions       int
	Hops           int
	DeadEnds       int
	FetchErrors    int
	RootErrors     int
	BlacklistStart int
	BlacklistEnd   int
}

func (st *Stats) addSession() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions++
}

func (st *Stats) addRootError() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.rootErrors++
}

func (st *Stats) addVisit(v model.Visit) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.hops++
	switch v.Outcome {
	case model.OutcomeDeadEnd:
		st.deadEnds++
	case model.OutcomeFetchError:
		st.fetchErrors++
	}
}

func (st *Stats) snapshot() StatsSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return StatsSnapshot{
		Sessions:       st.sessions,
		Hops:           st.hops,
		DeadEnds:       st.deadEnds,
		FetchErrors:    st.fetchErrors,
		RootErrors:     st.rootErrors,
		BlacklistStart: st.blacklistStart,
		// Every dead end and fetch failure adds exactly one entry, and
		// nothing ever removes one.
		BlacklistEnd: st.blacklistStart + st.deadEnds + st.fetchErrors,
	}
}
