package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/display"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/run"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List recordings that would be merged",
	Long: `Scan the camera directories and show the merge groups without
running any merges.

Examples:
  dashmerge scan                # Everything
  dashmerge scan -d 2025-09-06  # One day`,
	Args: cobra.NoArgs,
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringP("date", "d", "", "Restrict to a recording date (YYYY-MM-DD)")
}

func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogger(cfg)

	runner := run.NewRunner(cfg, nil, nil, nil, nil)
	cat, err := runner.Scan()
	if err != nil {
		return err
	}

	if date, _ := cmd.Flags().GetString("date"); date != "" {
		var ok bool
		cat, ok = cat.FilterDate(strings.ReplaceAll(date, "-", ""))
		if !ok {
			fmt.Printf("No recordings for %s\n", date)
			return nil
		}
	}

	groups := cat.Groups()
	if len(groups) == 0 {
		fmt.Println("No recordings found")
		return nil
	}

	var files int
	var bytes int64
	for _, g := range groups {
		info := g.Info()
		fmt.Printf("%s  %-12s  %3d clips  %9s  %s to %s\n",
			g.Clips[0].FormattedDate(),
			cfg.CameraName(g.Camera),
			info.Files,
			display.FormatBytes(info.TotalBytes),
			info.StartTime,
			info.EndTime,
		)
		files += info.Files
		bytes += info.TotalBytes
	}
	fmt.Printf("\n%d groups, %d clips, %s\n", len(groups), files, display.FormatBytes(bytes))
	return nil
}
