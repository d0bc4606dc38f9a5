package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile tests the YAML file loader.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads a full config file", func(t *testing.T) {
		t.Parallel()

		content := `
root_urls:
  - https://example.com
  - https://example.org
blacklisted_urls:
  - facebook.com
user_agents:
  - agent-a
max_depth: 10
min_sleep: 1
max_sleep: 4
timeout: 3600
request_timeout: 8
max_body_size: 1048576
max_requests_per_second: 2.5
journal_dir: /tmp/journal
`
		path := filepath.Join(t.TempDir(), ".zatsuon.yaml")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(f.RootURLs) != 2 {
			t.Errorf("expected 2 root URLs, got %d", len(f.RootURLs))
		}
		if f.MaxDepth != 10 {
			t.Errorf("expected max_depth 10, got %d", f.MaxDepth)
		}
		if f.MaxRequestsPerSecond != 2.5 {
			t.Errorf("expected rate 2.5, got %f", f.MaxRequestsPerSecond)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("root_urls: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

// TestFileApply tests merging file values onto a Config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("set values override defaults", func(t *testing.T) {
		t.Parallel()

		minSleep := 1
		f := &File{
			RootURLs:   []string{"https://example.com"},
			UserAgents: []string{"agent-a"},
			MaxDepth:   7,
			MinSleep:   &minSleep,
			MaxSleep:   2,
			Timeout:    60,
		}
		cfg := NewConfig()
		f.Apply(cfg)

		if cfg.MaxDepth != 7 {
			t.Errorf("expected MaxDepth 7, got %d", cfg.MaxDepth)
		}
		if cfg.MinSleep != time.Second {
			t.Errorf("expected MinSleep 1s, got %v", cfg.MinSleep)
		}
		if cfg.Timeout != time.Minute {
			t.Errorf("expected Timeout 1m, got %v", cfg.Timeout)
		}
	})

	t.Run("unset values keep defaults", func(t *testing.T) {
		t.Parallel()

		f := &File{RootURLs: []string{"https://example.com"}}
		cfg := NewConfig()
		f.Apply(cfg)

		if cfg.MaxDepth != DefaultMaxDepth {
			t.Errorf("expected default MaxDepth, got %d", cfg.MaxDepth)
		}
		if cfg.RequestTimeout != DefaultRequestTimeout {
			t.Errorf("expected default RequestTimeout, got %v", cfg.RequestTimeout)
		}
		if cfg.Timeout != 0 {
			t.Errorf("expected unbounded Timeout, got %v", cfg.Timeout)
		}
		if cfg.MinSleep != DefaultMinSleep {
			t.Errorf("expected default MinSleep, got %v", cfg.MinSleep)
		}
	})

	t.Run("zero min_sleep in the file is honored", func(t *testing.T) {
		t.Parallel()

		content := `
root_urls:
  - https://example.com
user_agents:
  - agent-a
min_sleep: 0
max_sleep: 2
`
		path := filepath.Join(t.TempDir(), ".zatsuon.yaml")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f.MinSleep == nil {
			t.Fatal("expected min_sleep to be set")
		}

		cfg := NewConfig()
		f.Apply(cfg)

		if cfg.MinSleep != 0 {
			t.Errorf("expected MinSleep 0, got %v", cfg.MinSleep)
		}
		if cfg.MaxSleep != 2*time.Second {
			t.Errorf("expected MaxSleep 2s, got %v", cfg.MaxSleep)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected zero MinSleep to validate, got %v", err)
		}
	})
}

// TestFindConfigFile tests the search order for the config file.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path yields empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})
}
