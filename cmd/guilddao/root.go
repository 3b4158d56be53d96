package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "guilddao",
	Short: "Modular DAO framework on an in-memory host",
	Long: `guilddao wires a registry, bank, membership, proposal, voting,
financing and onboarding module together on a deterministic in-memory
host and lets you drive full proposal lifecycles against it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the slog logger the modules emit their event lines to.
// GUILDDAO_LOG_LEVEL=debug|info|warn|error controls verbosity.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("GUILDDAO_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
