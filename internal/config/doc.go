// Package config provides configuration structures and utilities for zatsuon.
// It defines the options that shape a decoy-traffic session: seed URLs,
// the user-agent pool, walk depth, pacing delays, and timeouts.
package config
