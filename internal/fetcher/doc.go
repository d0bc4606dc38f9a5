// Package fetcher performs the outbound HTTP requests for the random
// walk: one GET per hop with a randomized User-Agent, a per-request
// timeout, a response size cap, and an optional request rate limit.
//
// The package absorbs HTTP status failures rather than propagating them.
// A non-2xx response becomes an empty body, which drives the walk's
// dead-end handling; only transport-level failures and oversized bodies
// surface as errors.
package fetcher
