package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".zatsuon.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML representation of the configuration.
// Durations are plain integer seconds, matching the config format the
// original decoy generators shipped with, so existing files port over by
// renaming keys only.
//
// Numeric fields use zero to mean "not set, keep the default". MinSleep
// is the exception: zero is a valid lower pacing bound, so it is a
// pointer and nil means absent.
type File struct {
	// RootURLs are the seed URLs for each session iteration.
	RootURLs []string `yaml:"root_urls"`

	// BlacklistedURLs are the initial blacklist substrings.
	BlacklistedURLs []string `yaml:"blacklisted_urls"`

	// UserAgents is the user-agent pool.
	UserAgents []string `yaml:"user_agents"`

	// MaxDepth is the maximum hops per walk.
	MaxDepth int `yaml:"max_depth"`

	// MinSleep and MaxSleep bound the inter-hop pacing delay, in seconds.
	// MinSleep may be zero, so absence is detected through the pointer.
	MinSleep *int `yaml:"min_sleep"`
	MaxSleep int  `yaml:"max_sleep"`

	// Timeout is the session deadline in seconds. Zero or absent means
	// the session runs until interrupted.
	Timeout int `yaml:"timeout"`

	// RequestTimeout is the per-fetch timeout in seconds.
	RequestTimeout int `yaml:"request_timeout"`

	// MaxBodySize is the response body cap in bytes.
	MaxBodySize int64 `yaml:"max_body_size"`

	// MaxRequestsPerSecond caps the outbound request rate.
	MaxRequestsPerSecond float64 `yaml:"max_requests_per_second"`

	// JournalDir is the SQLite visit journal directory.
	JournalDir string `yaml:"journal_dir"`
}

// LoadConfigFile loads a configuration file from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// Apply merges the file values onto cfg. List values replace the
// corresponding Config fields outright; numeric values are applied only
// when set, leaving the defaults from NewConfig otherwise.
func (f *File) Apply(cfg *Config) {
	if len(f.RootURLs) > 0 {
		cfg.RootURLs = f.RootURLs
	}
	if len(f.BlacklistedURLs) > 0 {
		cfg.BlacklistedURLs = f.BlacklistedURLs
	}
	if len(f.UserAgents) > 0 {
		cfg.UserAgents = f.UserAgents
	}
	if f.MaxDepth > 0 {
		cfg.MaxDepth = f.MaxDepth
	}
	if f.MinSleep != nil {
		cfg.MinSleep = time.Duration(*f.MinSleep) * time.Second
	}
	if f.MaxSleep > 0 {
		cfg.MaxSleep = time.Duration(f.MaxSleep) * time.Second
	}
	if f.Timeout > 0 {
		cfg.Timeout = time.Duration(f.Timeout) * time.Second
	}
	if f.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(f.RequestTimeout) * time.Second
	}
	if f.MaxBodySize > 0 {
		cfg.MaxBodySize = f.MaxBodySize
	}
	if f.MaxRequestsPerSecond > 0 {
		cfg.MaxRequestsPerSecond = f.MaxRequestsPerSecond
	}
	if f.JournalDir != "" {
		cfg.JournalDir = f.JournalDir
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .zatsuon.yaml in the current directory
// 3. Look for .zatsuon.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
