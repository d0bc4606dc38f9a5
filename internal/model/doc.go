// Package model defines the data structures shared across zatsuon's
// packages: per-hop visit records and the end-of-run summary.
package model
