// Package merge runs the two-tier merge protocol against one planned
// job: a fast lossless stream-copy attempt, a re-encode fallback, and
// partial-output salvage when the tool fails after writing usable data.
package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/planner"
)

// Progress receives executor checkpoints: files accounted for, bytes
// accounted for, the file currently being written, and a human status
// line. The executor knows nothing about how progress is aggregated or
// rendered.
type Progress func(files int, bytes int64, file, status string)

// Result is the terminal outcome of one job.
type Result struct {
	State  State
	Method Method  // tier that produced the output, if any
	Output string  // path of the usable output, empty on failure
	Stderr string  // diagnostics from the last failing tool invocation
	Trace  []State // states visited, in order, ending in the terminal state
	Err    error
}

// OK reports whether the job ended in a usable merged file at its final
// destination.
func (r Result) OK() bool {
	return r.State.OK()
}

// Executor runs merge jobs. It holds no per-job state, so one executor
// is safely shared by concurrently running jobs.
type Executor struct {
	tool     Tool
	copy     CopyProfile
	reencode ReencodeProfile
	log      *slog.Logger
}

// NewExecutor creates an executor around the given tool and profiles.
func NewExecutor(tool Tool, copy CopyProfile, reencode ReencodeProfile, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{tool: tool, copy: copy, reencode: reencode, log: log}
}

// run tracks one job's walk through the state machine.
type run struct {
	job    planner.Job
	report Progress
	log    *slog.Logger
	trace  []State
}

func (r *run) enter(s State) {
	r.trace = append(r.trace, s)
}

// Execute runs one job to a terminal state. Every failure is reduced to
// the returned Result; nothing escapes to abort sibling jobs.
func (e *Executor) Execute(ctx context.Context, job planner.Job, report Progress) Result {
	if report == nil {
		report = func(int, int64, string, string) {}
	}
	r := &run{
		job:    job,
		report: report,
		log:    e.log.With("group", job.ID()),
	}
	r.enter(StatePlanned)

	if len(job.Clips) == 0 {
		return r.fail(Result{Err: ErrNoClips})
	}

	out := filepath.Base(job.OutputPath)
	report(0, 0, "", "preparing")

	// A missing binary is fatal for the job before any tier is attempted.
	if err := e.tool.LookPath(); err != nil {
		return r.fail(Result{Err: fmt.Errorf("%w: %v", ErrToolNotFound, err)})
	}

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return r.fail(Result{Err: fmt.Errorf("create working dir: %w", err)})
	}
	if err := writeManifest(job.ManifestPath, job.Clips); err != nil {
		return r.fail(Result{Err: err})
	}
	defer removeQuiet(job.ManifestPath)

	// Tier one: stream copy.
	r.enter(StateCopyAttempt)
	report(0, 0, out, "merging (stream copy)")
	r.log.Info("merging", "files", len(job.Clips), "bytes", job.TotalBytes(), "method", MethodCopy)

	stderr, err := e.tool.Run(ctx, copyArgs(e.copy, job.ManifestPath, job.OutputPath))
	if err == nil {
		return r.finish(Result{State: StateSuccess, Method: MethodCopy})
	}
	if errors.Is(err, ErrToolNotFound) {
		return r.fail(Result{Stderr: stderr, Err: err})
	}

	// Tier two: re-encode. Exactly one escalation, never more.
	r.log.Warn("stream copy failed, re-encoding", "error", err)
	r.enter(StateReencodeAttempt)
	report(0, 0, out, "merging (re-encode)")

	stderr, err = e.tool.Run(ctx, reencodeArgs(e.reencode, job.ManifestPath, job.OutputPath))
	if err == nil {
		return r.finish(Result{State: StateSuccess, Method: MethodReencode})
	}

	// Some transcoders write a usable file before exiting non-zero on
	// trailing-frame or timestamp warnings. A non-empty output is kept as
	// a qualified success.
	if fi, statErr := os.Stat(job.OutputPath); statErr == nil && fi.Size() > 0 {
		r.log.Warn("re-encode exited non-zero but produced output, salvaging",
			"output", job.OutputPath, "bytes", fi.Size())
		return r.finish(Result{State: StatePartialSalvage, Method: MethodReencode})
	}

	removeQuiet(job.OutputPath)
	return r.fail(Result{
		Stderr: stderr,
		Err:    fmt.Errorf("%w: %v", ErrTranscodeFailed, err),
	})
}

// finish relocates staged output and reports the terminal state. The job
// is defined by data reaching its destination: a relocation failure
// downgrades an otherwise successful transcode to Failed.
func (r *run) finish(res Result) Result {
	total := len(r.job.Clips)
	totalBytes := r.job.TotalBytes()
	out := filepath.Base(r.job.FinalPath)

	if r.job.Staged {
		r.report(total, totalBytes, out, "moving to destination")
		if err := relocate(r.job.OutputPath, r.job.FinalPath); err != nil {
			// The transcoded bytes exist and are good; keep them in
			// scratch for manual recovery instead of deleting them.
			r.log.Error("relocation failed, staged output preserved",
				"staged", r.job.OutputPath, "destination", r.job.FinalPath, "error", err)
			return r.fail(Result{
				Method: res.Method,
				Err:    fmt.Errorf("%w: %v", ErrRelocationFailed, err),
			})
		}
	}
	res.Output = r.job.FinalPath

	r.enter(res.State)
	res.Trace = r.trace

	switch res.State {
	case StatePartialSalvage:
		r.report(total, totalBytes, out, "done (salvaged)")
	default:
		r.report(total, totalBytes, out, "done")
	}
	r.log.Info("merge complete", "output", res.Output, "method", res.Method, "state", res.State.String())
	return res
}

// fail reports a terminal failure. Staged outputs of failed transcodes
// were already removed; the manifest cleanup runs via defer.
func (r *run) fail(res Result) Result {
	res.State = StateFailed
	r.enter(StateFailed)
	res.Trace = r.trace
	r.log.Error("merge failed", "error", res.Err)
	r.report(0, 0, "", "failed: "+res.Err.Error())
	return res
}
