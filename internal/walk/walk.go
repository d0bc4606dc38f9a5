package walk

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/zatsuon-dev/zatsuon/internal/extract"
	"github.com/zatsuon-dev/zatsuon/internal/fetcher"
	"github.com/zatsuon-dev/zatsuon/internal/model"
)

// Fetcher is the page-fetching collaborator the walk depends on.
// *fetcher.Client satisfies it; tests supply deterministic fakes.
type Fetcher interface {
	// Fetch performs an HTTP GET and returns the body as text.
	// A non-2xx status yields ("", nil); transport failures and
	// oversized bodies yield a non-nil error.
	Fetch(ctx context.Context, url string) (string, error)
}

// Outcome is the tagged result of a hop, and of a whole walk.
//
// Design decision: The walk signals its terminal states through this
// value rather than through errors. A dead end and a deadline are both
// expected terminations, not failures; reserving the error return for
// genuinely unexpected conditions keeps the session loop's
// classification unambiguous.
type Outcome int

const (
	// Stepping means the hop completed and the walk continues.
	Stepping Outcome = iota

	// DeadEnd means the frontier is exhausted or the depth budget is
	// spent. Normal termination; control returns to the session loop.
	DeadEnd

	// TimedOut means the session deadline has passed. The session loop
	// must stop the whole run when it sees this.
	TimedOut
)

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case Stepping:
		return "stepping"
	case DeadEnd:
		return "dead end"
	case TimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Walker is the random walk engine. It owns the frontier of candidate
// URLs and the blacklist for the duration of a session, and advances one
// hop at a time: pick a random candidate, fetch it, extract its links,
// pace, then either move the frontier onto the new page's links or
// blacklist the dead end.
//
// Walker is single-flow: one fetch, one extraction, one delay, strictly
// in sequence. The frontier and blacklist have exactly one mutator, so
// no locking is involved.
type Walker struct {
	// fetcher performs the HTTP GETs.
	fetcher Fetcher

	// blacklist rejects candidates and grows with every dead end.
	// Shared with the session loop so it persists across walks.
	blacklist *extract.Blacklist

	// maxDepth is the hop budget per walk. The counter advances on
	// every hop regardless of outcome, so a string of dead ends spends
	// the budget just like successful hops do.
	maxDepth int

	// minSleep and maxSleep bound the pacing delay drawn after each
	// fetch, uniformly from [minSleep, maxSleep).
	minSleep time.Duration
	maxSleep time.Duration

	// deadline is the session deadline. Zero means unbounded. It is
	// polled at the start of each hop only, so an in-flight fetch plus
	// its pacing delay can overshoot it.
	deadline time.Time

	// rand drives candidate selection and the pacing delay.
	// Injectable so tests can verify exact traversal paths.
	rand *rand.Rand

	// logger records per-hop progress.
	logger *slog.Logger

	// observe, when set, receives a record of every hop. The session
	// loop uses it for statistics and the optional visit journal.
	observe func(model.Visit)

	// frontier is the current candidate set. Owned by the walk between
	// Walk calls; reset by each call.
	frontier []string
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxDepth sets the hop budget per walk.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		w.maxDepth = depth
	}
}

// WithSleepRange sets the pacing delay bounds. The per-hop delay is
// drawn uniformly from [minSleep, maxSleep); equal bounds mean a fixed
// delay of minSleep.
func WithSleepRange(minSleep, maxSleep time.Duration) Option {
	return func(w *Walker) {
		w.minSleep = minSleep
		w.maxSleep = maxSleep
	}
}

// WithDeadline sets the session deadline. The zero time disables it.
func WithDeadline(deadline time.Time) Option {
	return func(w *Walker) {
		w.deadline = deadline
	}
}

// WithRand sets the random source for candidate selection and pacing.
func WithRand(r *rand.Rand) Option {
	return func(w *Walker) {
		w.rand = r
	}
}

// WithLogger sets the logger for per-hop output.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// WithObserver sets the per-hop visit callback.
func WithObserver(fn func(model.Visit)) Option {
	return func(w *Walker) {
		w.observe = fn
	}
}

// NewWalker creates a Walker that fetches with f and filters candidates
// against blacklist. The blacklist is shared, not copied: dead ends
// found by the walk must stay blacklisted for the rest of the session.
func NewWalker(f Fetcher, blacklist *extract.Blacklist, opts ...Option) *Walker {
	w := &Walker{
		fetcher:   f,
		blacklist: blacklist,
		maxDepth:  25,
		minSleep:  3 * time.Second,
		maxSleep:  6 * time.Second,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk runs the random walk over the given initial frontier until a
// terminal state. sessionID tags the hop records this walk emits.
//
// The returned outcome is DeadEnd or TimedOut; both are normal
// terminations with a nil error. A non-nil error means the walk was cut
// short by something the session loop must classify: an oversized page,
// or context cancellation.
func (w *Walker) Walk(ctx context.Context, sessionID string, frontier []string) (Outcome, error) {
	w.frontier = frontier

	for depth := 0; ; depth++ {
		outcome, err := w.hop(ctx, sessionID, depth)
		if err != nil {
			return outcome, err
		}
		if outcome != Stepping {
			w.logger.Debug("walk finished", "session", sessionID, "outcome", outcome.String(), "depth", depth)
			return outcome, nil
		}
	}
}

// hop advances the walk by one step. The ordering is load-bearing:
// the frontier/depth check decides DeadEnd before the deadline is
// consulted, and the deadline is consulted before any fetch, so a walk
// past its deadline never issues another request.
func (w *Walker) hop(ctx context.Context, sessionID string, depth int) (Outcome, error) {
	if len(w.frontier) == 0 || depth >= w.maxDepth {
		return DeadEnd, nil
	}

	if !w.deadline.IsZero() && !time.Now().Before(w.deadline) {
		return TimedOut, nil
	}

	if err := ctx.Err(); err != nil {
		return Stepping, err
	}

	target := w.frontier[w.rand.Intn(len(w.frontier))]
	visit := model.Visit{
		SessionID: sessionID,
		URL:       target,
		Depth:     depth,
		Timestamp: time.Now(),
	}

	body, fetchErr := w.fetcher.Fetch(ctx, target)
	if fetchErr != nil {
		// An oversized page is recovered at the session level, not here:
		// it says nothing about the URL's links, so blacklisting it
		// would be wrong.
		if errors.Is(fetchErr, fetcher.ErrBodyTooLarge) {
			return Stepping, fetchErr
		}
		if err := ctx.Err(); err != nil {
			return Stepping, err
		}
	}

	subFrontier := extract.FilterLinks(extract.Links(body, target), w.blacklist)
	visit.Links = len(subFrontier)

	if err := w.pause(ctx); err != nil {
		return Stepping, err
	}

	switch {
	case fetchErr != nil:
		// Transport failure mid-walk: recovered locally, same as a
		// dead end.
		w.logger.Debug("fetch failed, blacklisting", "session", sessionID, "url", target, "error", fetchErr)
		w.removeAndBlacklist(target)
		visit.Outcome = model.OutcomeFetchError
	case len(subFrontier) > 1:
		// The walk moves onto the new page's link set, discarding the
		// previous frontier entirely.
		w.logger.Debug("stepped", "session", sessionID, "url", target, "depth", depth, "links", len(subFrontier))
		w.frontier = subFrontier
		visit.Outcome = model.OutcomeStepped
	default:
		// Zero or one accepted link is a dead end: not enough choice
		// left to keep wandering from here.
		w.logger.Debug("dead end, blacklisting", "session", sessionID, "url", target, "depth", depth)
		w.removeAndBlacklist(target)
		visit.Outcome = model.OutcomeDeadEnd
	}

	if w.observe != nil {
		w.observe(visit)
	}

	return Stepping, nil
}

// pause suspends the walk for a duration drawn uniformly from
// [minSleep, maxSleep). The randomized gap between hops is what makes
// the traffic's timing profile look like a person reading pages.
func (w *Walker) pause(ctx context.Context) error {
	d := w.minSleep
	if span := w.maxSleep - w.minSleep; span > 0 {
		d += time.Duration(w.rand.Int63n(int64(span)))
	}
	if d <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// removeAndBlacklist removes url from the frontier and blacklists it so
// no later page can feed it back in. Removal is by first occurrence; the
// blacklist entry makes any duplicates unreachable as well.
func (w *Walker) removeAndBlacklist(url string) {
	for i, candidate := range w.frontier {
		if candidate == url {
			w.frontier = append(w.frontier[:i], w.frontier[i+1:]...)
			break
		}
	}
	w.blacklist.Add(url)
}
