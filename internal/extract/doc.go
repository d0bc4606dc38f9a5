// Package extract turns raw HTML into frontier candidates for the random
// walk. It extracts hyperlink references, normalizes them to absolute
// URLs, and applies the acceptance filter: a syntactic absolute-URL
// grammar plus a growable substring blacklist.
//
// Extraction and filtering are separate stages on purpose. Normalization
// silently drops only what cannot be parsed at all; the acceptance
// predicate is pure and can be tested against the grammar in isolation.
package extract
