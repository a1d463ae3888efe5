// Package run wires the scan, plan, merge, progress and history pieces
// into one end-to-end merge run.
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/catalog"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/clip"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/config"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/history"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/merge"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/planner"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/progress"
)

// ErrNoGroups means scanning found nothing to merge after filtering.
var ErrNoGroups = errors.New("no recordings found")

// UnknownCameraError reports a --camera filter that matches no scanned
// position, carrying the known positions for a suggestion.
type UnknownCameraError struct {
	Camera string
	Known  []string
}

func (e *UnknownCameraError) Error() string {
	return fmt.Sprintf("unknown camera %q (have: %s)", e.Camera, strings.Join(e.Known, ", "))
}

// Options select and bound one run.
type Options struct {
	Date   string // recording date filter, YYYY-MM-DD or YYYYMMDD
	Camera string // camera position filter
	Jobs   int    // overrides performance.max_parallel when > 0
}

// JobResult pairs a planned job with its merge outcome.
type JobResult struct {
	Job    planner.Job
	Result merge.Result
}

// Results is the outcome of a full run.
type Results struct {
	Jobs      []JobResult
	Succeeded int
	Salvaged  int
	Failed    int
}

// Total returns the number of jobs attempted.
func (r Results) Total() int {
	return len(r.Jobs)
}

// Runner owns the per-run wiring. One runner handles one process
// lifetime; Merge may be called once per invocation.
type Runner struct {
	cfg     *config.Config
	exec    *merge.Executor
	tracker *progress.Tracker
	ledger  *history.Store // nil when the ledger is disabled
	log     *slog.Logger
}

// NewRunner assembles a runner from loaded configuration. The ledger
// may be nil.
func NewRunner(cfg *config.Config, exec *merge.Executor, tracker *progress.Tracker, ledger *history.Store, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{cfg: cfg, exec: exec, tracker: tracker, ledger: ledger, log: log}
}

// Scan walks the configured camera paths and returns the grouped
// catalog, before any filtering.
func (r *Runner) Scan() (catalog.Catalog, error) {
	parser, err := clip.NewParser(r.cfg.VideoPattern)
	if err != nil {
		return nil, fmt.Errorf("video pattern: %w", err)
	}
	b := catalog.NewBuilder(parser, r.log)
	return b.Build(r.cfg.CameraPaths), nil
}

// Merge scans, filters, plans and executes every matching group,
// bounded by the configured parallelism. Per-job failures are collected
// in Results; only setup problems surface as an error.
func (r *Runner) Merge(ctx context.Context, opts Options) (Results, error) {
	cat, err := r.Scan()
	if err != nil {
		return Results{}, err
	}

	if opts.Date != "" {
		var ok bool
		cat, ok = cat.FilterDate(normalizeDate(opts.Date))
		if !ok {
			return Results{}, fmt.Errorf("%w for date %s", ErrNoGroups, opts.Date)
		}
	}
	if opts.Camera != "" {
		known := allCameras(cat)
		cat = cat.FilterCamera(opts.Camera)
		if len(cat) == 0 {
			return Results{}, &UnknownCameraError{Camera: opts.Camera, Known: known}
		}
	}

	groups := cat.Groups()
	if len(groups) == 0 {
		return Results{}, ErrNoGroups
	}

	popts := planner.Options{
		OutputDir:    r.cfg.OutputDir,
		LocalStaging: r.cfg.Performance.UseLocalProcessing,
	}
	jobs := make([]planner.Job, len(groups))
	for i, g := range groups {
		jobs[i] = planner.Plan(g, popts)
		if r.tracker != nil {
			r.tracker.Register(jobs[i].ID(), len(jobs[i].Clips), jobs[i].TotalBytes())
		}
	}

	limit := r.cfg.Performance.MaxParallel
	if opts.Jobs > 0 {
		limit = opts.Jobs
	}
	r.log.Info("starting merge run", "groups", len(jobs), "parallel", limit,
		"local_staging", popts.LocalStaging)

	results := make([]JobResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = JobResult{Job: job, Result: r.execute(gctx, job)}
			return nil
		})
	}
	// Workers never return errors; per-job failures live in results.
	_ = g.Wait()

	var out Results
	out.Jobs = results
	for _, jr := range results {
		switch jr.Result.State {
		case merge.StateSuccess:
			out.Succeeded++
		case merge.StatePartialSalvage:
			out.Succeeded++
			out.Salvaged++
		default:
			out.Failed++
		}
	}
	return out, ctx.Err()
}

func (r *Runner) execute(ctx context.Context, job planner.Job) merge.Result {
	id := job.ID()
	report := func(files int, bytes int64, file, status string) {
		if r.tracker != nil {
			r.tracker.Update(id, files, bytes, file, status)
		}
	}
	res := r.exec.Execute(ctx, job, report)
	if r.tracker != nil {
		if res.OK() {
			r.tracker.Finish(id, true, "done")
		} else {
			r.tracker.Finish(id, false, "failed")
		}
	}
	r.record(job, res)
	return res
}

// record appends the outcome to the ledger. Ledger failures are logged
// and swallowed; bookkeeping never fails a merge.
func (r *Runner) record(job planner.Job, res merge.Result) {
	if r.ledger == nil {
		return
	}
	date := job.Date
	if len(date) == 8 {
		date = date[:4] + "-" + date[4:6] + "-" + date[6:]
	}
	e := &history.Entry{
		Date:   date,
		Camera: job.Camera,
		State:  res.State.String(),
		Method: string(res.Method),
		Output: res.Output,
		Files:  len(job.Clips),
		Bytes:  job.TotalBytes(),
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	if err := r.ledger.Add(e); err != nil {
		r.log.Warn("recording merge history failed", "group", job.ID(), "error", err)
	}
}

// normalizeDate accepts 2025-09-06 or 20250906 and returns the compact
// form used by catalog keys.
func normalizeDate(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

// allCameras returns the distinct camera positions across every date,
// sorted.
func allCameras(cat catalog.Catalog) []string {
	seen := make(map[string]struct{})
	for _, date := range cat.Dates() {
		for _, cam := range cat.Cameras(date) {
			seen[cam] = struct{}{}
		}
	}
	cams := make([]string, 0, len(seen))
	for cam := range seen {
		cams = append(cams, cam)
	}
	sort.Strings(cams)
	return cams
}
