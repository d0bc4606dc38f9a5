package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the behavior of the classic decoy-traffic generators: short
// per-request timeouts, a modest walk depth, and a few seconds of pacing
// between hops so the traffic profile resembles a human reading pages.
const (
	// DefaultMaxDepth bounds the number of hops per random walk.
	// 25 hops is deep enough to wander well away from the root page while
	// still guaranteeing the walk returns to the session loop regularly.
	DefaultMaxDepth = 25

	// DefaultMinSleep is the lower bound of the inter-hop pacing delay.
	// Sub-second hopping would look like a bot to any traffic observer,
	// which defeats the purpose of the tool.
	DefaultMinSleep = 3 * time.Second

	// DefaultMaxSleep is the exclusive upper bound of the pacing delay.
	DefaultMaxSleep = 6 * time.Second

	// DefaultRequestTimeout is the per-fetch timeout. Most pages either
	// answer within a few seconds or are not worth waiting for; a slow
	// fetch also stalls the pacing rhythm of the walk.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultMaxBodySize limits the response body size read per fetch.
	// 5MB is plenty for any HTML page and keeps a hostile or misbehaving
	// server from exhausting memory.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "zatsuon"
)

// Config holds all options for a run.
// It is constructed once at startup from the config file and CLI flags and
// then passed into the session loop; the core never mutates it. The only
// growable state derived from it is the blacklist, which the walk copies
// before appending to.
type Config struct {
	// RootURLs are the seed URLs. Each session iteration picks one of
	// these uniformly at random and starts a fresh walk from it.
	RootURLs []string

	// BlacklistedURLs are substrings that disqualify any URL containing
	// them. Matching is literal substring containment, not exact match,
	// so "facebook.com" also rejects "https://m.facebook.com/login".
	BlacklistedURLs []string

	// UserAgents is the pool from which each request's User-Agent header
	// is chosen uniformly at random.
	UserAgents []string

	// MaxDepth is the maximum number of hops per walk before a forced
	// dead end returns control to the session loop.
	MaxDepth int

	// MinSleep and MaxSleep bound the randomized inter-hop pacing delay.
	// The delay is drawn uniformly from [MinSleep, MaxSleep).
	MinSleep time.Duration
	MaxSleep time.Duration

	// Timeout is the session-wide deadline measured from session start.
	// Zero means the session runs until interrupted.
	Timeout time.Duration

	// RequestTimeout is the per-fetch HTTP timeout.
	RequestTimeout time.Duration

	// MaxBodySize is the maximum response body size in bytes to read.
	// Larger pages are classified as resource exhaustion and skipped.
	MaxBodySize int64

	// MaxRequestsPerSecond caps the outbound request rate regardless of
	// the pacing delay. Zero means no cap beyond the pacing delay itself.
	MaxRequestsPerSecond float64

	// JournalDir is the directory for the SQLite visit journal.
	// Empty disables journaling.
	JournalDir string

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONLog switches log output from text to JSON format.
	JSONLog bool

	// JSONReport and MarkdownReport select the session summary format.
	// Mutually exclusive; both false means the human-readable summary.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile is the output path for the session summary.
	// Empty writes the summary to stdout.
	ReportFile string

	// ConfigFilePath is the path of the loaded configuration file.
	// Kept for log messages; empty when built purely from flags.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
// RootURLs and UserAgents have no sensible defaults and must be supplied
// by the config file before Validate passes.
func NewConfig() *Config {
	return &Config{
		MaxDepth:       DefaultMaxDepth,
		MinSleep:       DefaultMinSleep,
		MaxSleep:       DefaultMaxSleep,
		RequestTimeout: DefaultRequestTimeout,
		MaxBodySize:    DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for zatsuon.
// On Linux: ~/.local/share/zatsuon
// On macOS: ~/Library/Application Support/zatsuon
// On Windows: %LOCALAPPDATA%\zatsuon
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for zatsuon.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error so callers can
// use errors.Is; fixing one error often changes the rest anyway.
// Called once after flag parsing, before the session starts.
func (c *Config) Validate() error {
	if len(c.RootURLs) == 0 {
		return ErrNoRootURLs
	}

	if len(c.UserAgents) == 0 {
		return ErrNoUserAgents
	}

	if c.MaxDepth <= 0 {
		return ErrInvalidMaxDepth
	}

	if c.MinSleep < 0 || c.MaxSleep < c.MinSleep {
		return ErrInvalidSleepRange
	}

	if c.RequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	// Zero means unbounded; negative is meaningless
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	if c.MaxRequestsPerSecond < 0 {
		return ErrInvalidRequestRate
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
