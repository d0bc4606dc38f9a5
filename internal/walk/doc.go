// Package walk implements the random walk that generates the decoy
// traffic, and the session loop that drives it.
//
// # Architecture
//
// The Walker holds the frontier of candidate URLs and advances hop by
// hop: pick a candidate uniformly at random, fetch it, extract and
// filter its links, pause for a randomized delay, then either replace
// the frontier with the new page's links or blacklist the dead end. The
// depth counter advances on every hop regardless of outcome, so the hop
// budget bounds total work per root even through a string of dead ends.
//
// The Session picks a root URL at random each iteration, seeds the
// frontier from it, and runs a walk; dead ends restart from a new root,
// the deadline ends the run. Termination is signaled with a tagged
// Outcome value rather than errors, so the session's failure
// classification cannot accidentally swallow it.
//
// # Concurrency
//
// One logical flow: fetch, extract, pause, update, strictly in order.
// The frontier and blacklist have a single mutator and need no locks.
// Only the run counters are mutex-guarded, because the CLI reads them
// from a periodic stats reporter goroutine.
package walk
