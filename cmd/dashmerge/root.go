package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/config"
)

var version = "dev"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "dashmerge",
	Short: "Merge dashcam clip fragments into daily videos",
	Long: `dashmerge - merge dashcam clip fragments into daily videos

Scans the configured camera directories, groups recordings by date and
camera position, and concatenates each group into one output file with
ffmpeg. Stream copy is attempted first; groups that refuse lossless
concatenation are re-encoded.

Running dashmerge without a subcommand merges everything it finds.

Examples:
  dashmerge                       # Merge all recordings
  dashmerge -d 2025-09-06         # Merge one day
  dashmerge --camera F            # Front camera only
  dashmerge scan                  # Show what would be merged
  dashmerge history -d 2025-09-06 # Past results for one day`,
	Args:          cobra.NoArgs,
	RunE:          runMergeCmd,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override configured log level")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("dashmerge {{.Version}}\n")

	rootCmd.Flags().StringP("date", "d", "", "Merge a single recording date (YYYY-MM-DD)")
	rootCmd.Flags().String("camera", "", "Merge a single camera position")
	rootCmd.Flags().IntP("jobs", "j", 0, "Max concurrent merges (overrides config)")
	rootCmd.Flags().Bool("no-progress", false, "Disable the live progress display")
	rootCmd.Flags().Bool("no-summary", false, "Skip the end-of-run summary")
}

// loadConfig resolves, loads and validates the configuration shared by
// every subcommand.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, &config.Error{Path: path, Errors: problems}
	}
	return cfg, nil
}

// setupLogger builds the process logger on stderr so progress rendering
// on stdout stays clean.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
	slog.SetDefault(log)
	return log
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// isTerminal reports whether f is attached to a TTY (character device).
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
