package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. The defaults are documented through these tests so that
// changes to them are intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default MaxDepth is 25", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxDepth != 25 {
			t.Errorf("expected MaxDepth to be 25, got %d", cfg.MaxDepth)
		}
	})

	t.Run("default sleep range is 3s to 6s", func(t *testing.T) {
		t.Parallel()
		if cfg.MinSleep != 3*time.Second {
			t.Errorf("expected MinSleep to be 3s, got %v", cfg.MinSleep)
		}
		if cfg.MaxSleep != 6*time.Second {
			t.Errorf("expected MaxSleep to be 6s, got %v", cfg.MaxSleep)
		}
	})

	t.Run("default RequestTimeout is 5 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.RequestTimeout != 5*time.Second {
			t.Errorf("expected RequestTimeout to be 5s, got %v", cfg.RequestTimeout)
		}
	})

	t.Run("default session Timeout is unbounded", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 0 {
			t.Errorf("expected Timeout to be 0 (unbounded), got %v", cfg.Timeout)
		}
	})

	t.Run("default MaxBodySize is 5MB", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != 5*1024*1024 {
			t.Errorf("expected MaxBodySize to be 5MB, got %d", cfg.MaxBodySize)
		}
	})

	t.Run("journal is disabled by default", func(t *testing.T) {
		t.Parallel()
		if cfg.JournalDir != "" {
			t.Errorf("expected empty JournalDir, got %q", cfg.JournalDir)
		}
	})
}

// TestConfigValidate tests the Validate method, one rule per case.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests modify specific fields to trip individual rules.
	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.RootURLs = []string{"https://example.com"}
		cfg.UserAgents = []string{"test-agent"}
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"no root URLs", func(c *Config) { c.RootURLs = nil }, ErrNoRootURLs},
		{"no user agents", func(c *Config) { c.UserAgents = nil }, ErrNoUserAgents},
		{"zero max depth", func(c *Config) { c.MaxDepth = 0 }, ErrInvalidMaxDepth},
		{"negative max depth", func(c *Config) { c.MaxDepth = -1 }, ErrInvalidMaxDepth},
		{"negative min sleep", func(c *Config) { c.MinSleep = -time.Second }, ErrInvalidSleepRange},
		{"inverted sleep range", func(c *Config) { c.MinSleep = 6 * time.Second; c.MaxSleep = 3 * time.Second }, ErrInvalidSleepRange},
		{"zero request timeout", func(c *Config) { c.RequestTimeout = 0 }, ErrInvalidRequestTimeout},
		{"negative session timeout", func(c *Config) { c.Timeout = -time.Minute }, ErrInvalidTimeout},
		{"zero max body size", func(c *Config) { c.MaxBodySize = 0 }, ErrInvalidMaxBodySize},
		{"negative request rate", func(c *Config) { c.MaxRequestsPerSecond = -1 }, ErrInvalidRequestRate},
		{"conflicting report formats", func(c *Config) { c.JSONReport = true; c.MarkdownReport = true }, ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("equal sleep bounds are valid", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.MinSleep = 4 * time.Second
		cfg.MaxSleep = 4 * time.Second
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error for a fixed delay, got %v", err)
		}
	})
}
