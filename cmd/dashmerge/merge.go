package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hbollon/go-edlib"
	"github.com/spf13/cobra"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/config"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/display"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/history"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/merge"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/progress"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/run"
)

func runMergeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := setupLogger(cfg)

	date, _ := cmd.Flags().GetString("date")
	camera, _ := cmd.Flags().GetString("camera")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	noSummary, _ := cmd.Flags().GetBool("no-summary")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ledger *history.Store
	if cfg.Database.Path != "" {
		ledger, err = history.Open(cfg.Database.Path)
		if err != nil {
			// The ledger is bookkeeping; a broken one never blocks merging.
			log.Warn("merge history disabled", "error", err)
		} else {
			defer func() { _ = ledger.Close() }()
		}
	}

	tracker := progress.NewTracker()
	exec := merge.NewExecutor(merge.NewFFmpeg(),
		merge.CopyProfile{Video: cfg.FFmpeg.Copy.Video, Audio: cfg.FFmpeg.Copy.Audio},
		merge.ReencodeProfile{
			VideoCodec: cfg.FFmpeg.Reencode.VideoCodec,
			AudioCodec: cfg.FFmpeg.Reencode.AudioCodec,
			Preset:     cfg.FFmpeg.Reencode.Preset,
			CRF:        cfg.FFmpeg.Reencode.CRF,
			Threads:    cfg.FFmpeg.Reencode.Threads,
		},
		log)
	runner := run.NewRunner(cfg, exec, tracker, ledger, log)

	var renderer *display.Renderer
	var reporter *progress.Reporter
	if !noProgress {
		renderer = display.NewRenderer(os.Stdout, isTerminal(os.Stdout))
		reporter = progress.NewReporter(tracker, renderer.Render, 500*time.Millisecond)
		reporter.Start()
	}

	started := time.Now()
	results, err := runner.Merge(ctx, run.Options{Date: date, Camera: camera, Jobs: jobs})

	if reporter != nil {
		reporter.Stop()
		renderer.Clear()
	}

	if err != nil {
		var ucErr *run.UnknownCameraError
		if errors.As(err, &ucErr) {
			if hint := suggestCamera(ucErr.Camera, ucErr.Known); hint != "" {
				return fmt.Errorf("%w (did you mean %q?)", ucErr, hint)
			}
		}
		return err
	}

	if !noSummary {
		display.PrintSummary(os.Stdout, outcomes(cfg, results), time.Since(started))
	}

	// Per-group failures are reported in the summary and the ledger; the
	// run itself completed.
	if results.Failed > 0 {
		log.Warn("some groups failed", "failed", results.Failed, "total", results.Total())
	}
	return nil
}

// outcomes flattens runner results for the summary printer, swapping
// camera positions for their configured display names.
func outcomes(cfg *config.Config, results run.Results) []display.Outcome {
	out := make([]display.Outcome, 0, len(results.Jobs))
	for _, jr := range results.Jobs {
		date := jr.Job.Date
		if len(date) == 8 {
			date = date[:4] + "-" + date[4:6] + "-" + date[6:]
		}
		o := display.Outcome{
			Group:    date + "/" + cfg.CameraName(jr.Job.Camera),
			Output:   jr.Result.Output,
			Method:   string(jr.Result.Method),
			Files:    len(jr.Job.Clips),
			Bytes:    jr.Job.TotalBytes(),
			OK:       jr.Result.OK(),
			Salvaged: jr.Result.State == merge.StatePartialSalvage,
			Err:      jr.Result.Err,
		}
		out = append(out, o)
	}
	return out
}

// suggestCamera returns the closest known camera position, or empty
// when nothing is close enough to be a plausible typo.
func suggestCamera(got string, known []string) string {
	best := ""
	bestScore := float32(0.5)
	for _, cam := range known {
		if score := edlib.JaroWinklerSimilarity(got, cam); score > bestScore {
			best = cam
			bestScore = score
		}
	}
	return best
}
