package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zatsuon-dev/zatsuon/internal/config"
	"github.com/zatsuon-dev/zatsuon/internal/fetcher"
	"github.com/zatsuon-dev/zatsuon/internal/journal"
	zlog "github.com/zatsuon-dev/zatsuon/internal/log"
	"github.com/zatsuon-dev/zatsuon/internal/model"
	"github.com/zatsuon-dev/zatsuon/internal/report"
	"github.com/zatsuon-dev/zatsuon/internal/walk"
)

// statsInterval is how often the running session's counters are logged.
const statsInterval = 30 * time.Second

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate decoy browsing traffic",
		Long: `Run starts a decoy traffic session: it repeatedly picks one of the
configured seed URLs, fetches it, and wanders its hyperlinks at random
with a human-like pacing delay between requests.

The session runs until the --timeout deadline elapses or the process is
interrupted. On exit a summary of the generated traffic is printed.

Examples:
  # Run for one hour with the config file found in the usual places
  zatsuon run --timeout 1h

  # Use a specific configuration file
  zatsuon run -c myconfig.yaml

  # Persist a visit journal and emit a Markdown summary to a file
  zatsuon run --journal --markdown -o summary.md`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	// Session behavior flags
	cmd.Flags().DurationP("timeout", "t", 0,
		"How long the session should run (0 = until interrupted)")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum hops per walk before restarting from a new root")
	cmd.Flags().Duration("min-delay", config.DefaultMinSleep,
		"Lower bound of the randomized inter-hop delay")
	cmd.Flags().Duration("max-delay", config.DefaultMaxSleep,
		"Upper bound (exclusive) of the randomized inter-hop delay")
	cmd.Flags().Duration("request-timeout", config.DefaultRequestTimeout,
		"Per-request HTTP timeout")
	cmd.Flags().Float64("rate", 0,
		"Cap on outbound requests per second (0 = no cap)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .zatsuon.yaml in current or home directory)")

	// Journal and summary flags
	cmd.Flags().Bool("journal", false,
		"Keep the SQLite visit journal in the default data directory")
	cmd.Flags().String("journal-dir", "",
		"Directory for the SQLite visit journal (empty = no journal)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON session summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown session summary (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the session summary to the specified file path")
	cmd.Flags().Bool("json-log", false,
		"Emit logs in JSON format")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runSession(ctx, cmd, cfg, logger)
}

// setupLogger builds the session logger from the config.
func setupLogger(cfg *config.Config) *slog.Logger {
	if cfg.JSONLog {
		return zlog.NewJSONLogger(os.Stderr, cfg.Verbose)
	}
	return zlog.NewLogger(os.Stderr, cfg.Verbose)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildRunConfig creates a Config from the config file and cobra flags.
// File values are applied first; flags the user actually set override them.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPathFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly named a config file, failing to find it is
	// an error. With no explicit path, a missing file just means the
	// defaults plus flags must carry the run.
	configPath := config.FindConfigFile(configPathFlag)
	if configPath == "" && configPathFlag != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPathFlag)
	}

	if configPath != "" {
		f, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration file: %w", err)
		}
		f.Apply(cfg)
		cfg.ConfigFilePath = configPath
	}

	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("depth") {
		if cfg.MaxDepth, err = cmd.Flags().GetInt("depth"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("min-delay") {
		if cfg.MinSleep, err = cmd.Flags().GetDuration("min-delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-delay") {
		if cfg.MaxSleep, err = cmd.Flags().GetDuration("max-delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("request-timeout") {
		if cfg.RequestTimeout, err = cmd.Flags().GetDuration("request-timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("rate") {
		if cfg.MaxRequestsPerSecond, err = cmd.Flags().GetFloat64("rate"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("journal-dir") {
		if cfg.JournalDir, err = cmd.Flags().GetString("journal-dir"); err != nil {
			return nil, err
		}
	}

	// --journal without an explicit directory lands the journal in the
	// XDG data directory.
	journalOn, err := cmd.Flags().GetBool("journal")
	if err != nil {
		return nil, err
	}
	if journalOn && cfg.JournalDir == "" {
		cfg.JournalDir = config.XDGDataDir()
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.JSONLog, err = cmd.Flags().GetBool("json-log"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// runSession wires the collaborators together and drives the session to
// completion, then writes the summary.
func runSession(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	if cfg.ConfigFilePath != "" {
		logger.Info("loaded configuration", "path", cfg.ConfigFilePath)
	}

	client := fetcher.New(cfg.UserAgents,
		fetcher.WithTimeout(cfg.RequestTimeout),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithRateLimit(cfg.MaxRequestsPerSecond),
		fetcher.WithLogger(logger),
	)

	sessionOpts := []walk.SessionOption{
		walk.WithSessionTimeout(cfg.Timeout),
		walk.WithSessionLogger(logger),
		walk.WithWalkOptions(
			walk.WithMaxDepth(cfg.MaxDepth),
			walk.WithSleepRange(cfg.MinSleep, cfg.MaxSleep),
		),
	}

	// The journal keeps recording while the session winds down, so its
	// writes use the background context rather than the cancellable one.
	if cfg.JournalDir != "" {
		jnl, err := journal.Open(cfg.JournalDir)
		if err != nil {
			return fmt.Errorf("failed to open visit journal: %w", err)
		}
		defer func() {
			if err := jnl.Close(); err != nil {
				logger.Warn("failed to close journal", "error", err)
			}
		}()
		logger.Info("visit journal enabled", "path", jnl.Path())

		sessionOpts = append(sessionOpts, walk.WithVisitObserver(func(v model.Visit) {
			if err := jnl.Record(context.Background(), v); err != nil {
				logger.Warn("failed to journal visit", "url", v.URL, "error", err)
			}
		}))
	}

	session := walk.NewSession(cfg.RootURLs, client, cfg.BlacklistedURLs, sessionOpts...)

	logger.Info("starting decoy traffic session",
		"roots", len(cfg.RootURLs),
		"max_depth", cfg.MaxDepth,
		"timeout", cfg.Timeout,
	)

	// The session is the single flow of control; the stats reporter is
	// the only companion goroutine, and it only reads counters.
	runCtx, stop := context.WithCancel(ctx)
	g := new(errgroup.Group)

	g.Go(func() error {
		defer stop()
		return session.Run(runCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(statsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return nil
			case <-ticker.C:
				snap := session.Stats()
				logger.Info("session progress",
					"roots", snap.Sessions,
					"hops", snap.Hops,
					"dead_ends", snap.DeadEnds,
					"blacklist", snap.BlacklistEnd,
				)
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	summary := session.Summary()
	return writeSummary(cmd, cfg, &summary)
}

// writeSummary renders the session summary in the configured format, to
// stdout or to the --output file.
func writeSummary(cmd *cobra.Command, cfg *config.Config, summary *model.Summary) error {
	out := cmd.OutOrStdout()

	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out)
	}

	if _, err := w.Write(summary); err != nil {
		return fmt.Errorf("failed to write session summary: %w", err)
	}
	return nil
}
