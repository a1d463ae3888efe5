package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/display"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past merge results",
	Long: `List recorded merge outcomes, most recent first.

Requires database.path in the configuration.

Examples:
  dashmerge history                  # Recent results
  dashmerge history -d 2025-09-06    # One day
  dashmerge history --state failed   # Failures only`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("date", "d", "", "Filter by recording date (YYYY-MM-DD)")
	historyCmd.Flags().String("camera", "", "Filter by camera position")
	historyCmd.Flags().String("state", "", "Filter by state (success, partial-salvage, failed)")
	historyCmd.Flags().IntP("limit", "n", 20, "Max entries to show")
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogger(cfg)

	if cfg.Database.Path == "" {
		return errors.New("merge history is disabled: set database.path in the config")
	}

	store, err := history.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	f := history.Filter{}
	if v, _ := cmd.Flags().GetString("date"); v != "" {
		f.Date = &v
	}
	if v, _ := cmd.Flags().GetString("camera"); v != "" {
		f.Camera = &v
	}
	if v, _ := cmd.Flags().GetString("state"); v != "" {
		f.State = &v
	}
	f.Limit, _ = cmd.Flags().GetInt("limit")

	entries, err := store.List(f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history entries")
		return nil
	}

	for _, e := range entries {
		mark := "✓"
		detail := fmt.Sprintf("%s, %d clips, %s", e.Method, e.Files, display.FormatBytes(e.Bytes))
		switch e.State {
		case "partial-salvage":
			mark = "~"
		case "failed":
			mark = "✗"
			detail = e.Error
		}
		fmt.Printf("%s  %s %s/%s  %s  (%s)\n",
			e.CreatedAt.Format("2006-01-02 15:04"),
			mark, e.Date, cfg.CameraName(e.Camera), e.Output, detail)
	}
	return nil
}
