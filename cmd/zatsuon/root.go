// Package main provides the entry point for the zatsuon CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for zatsuon.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zatsuon",
		Short: "Decoy web traffic generator",
		Long: `zatsuon generates decoy HTTP browsing traffic. Starting from configured
seed URLs, it follows hyperlinks at random with human-like pacing and a
randomized User-Agent per request, producing noise that genuine browsing
disappears into.

Create a starter configuration with "zatsuon init", then start a session
with "zatsuon run".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
