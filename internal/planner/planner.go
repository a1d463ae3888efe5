// Package planner turns clip groups into concrete merge jobs: output
// naming, manifest placement, and scratch-vs-final working location.
package planner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/catalog"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/clip"
)

// DefaultExt is the container extension for merged output.
const DefaultExt = "mp4"

// Options control job planning.
type Options struct {
	OutputDir string
	// LocalStaging places the manifest and merge output in a per-job
	// scratch directory; the result is relocated to OutputDir only after
	// the merge succeeds. Avoids transcoding against slow network mounts.
	LocalStaging bool
	// ScratchRoot overrides where staged jobs work. Empty means the OS
	// temp directory.
	ScratchRoot string
	// Ext overrides the output container extension. Empty means DefaultExt.
	Ext string
}

// Job is one planned merge: everything the executor needs to turn a
// group of clips into a single output file. Jobs are consumed once and
// never retried beyond the executor's built-in tiers.
type Job struct {
	Date   string
	Camera string
	Clips  []clip.Clip

	// ManifestPath is the concat list consumed by ffmpeg.
	ManifestPath string
	// OutputPath is where ffmpeg writes. Equal to FinalPath unless the
	// job is staged.
	OutputPath string
	// FinalPath is the deterministic destination in the output directory.
	FinalPath string
	// Staged reports that OutputPath is in scratch and the result must be
	// relocated to FinalPath after the merge.
	Staged bool
}

// ID identifies the job in progress reporting and logs.
func (j Job) ID() string {
	return j.Date + "/" + j.Camera
}

// TotalBytes sums the sizes of the job's input clips.
func (j Job) TotalBytes() int64 {
	var n int64
	for _, c := range j.Clips {
		n += c.Size
	}
	return n
}

// OutputName returns the deterministic output filename for a date and
// camera. Keyed only by (date, camera) so a re-run overwrites the
// previous result instead of accumulating variants.
func OutputName(date, camera, ext string) string {
	formatted := date
	if len(date) == 8 {
		formatted = date[:4] + "-" + date[4:6] + "-" + date[6:8]
	}
	return fmt.Sprintf("merged_%s_%s.%s", formatted, camera, ext)
}

// ManifestName returns the transient concat-list filename for a date
// and camera.
func ManifestName(date, camera string) string {
	return fmt.Sprintf("filelist_%s_%s.txt", date, camera)
}

// Plan maps a group onto a job. Pure: no filesystem access, no side
// effects. Scratch paths are derived from (date, camera), which is
// unique per job, so no two concurrent jobs ever share a working path.
func Plan(g catalog.Group, opts Options) Job {
	ext := opts.Ext
	if ext == "" {
		ext = DefaultExt
	}

	final := filepath.Join(opts.OutputDir, OutputName(g.Date, g.Camera, ext))

	job := Job{
		Date:      g.Date,
		Camera:    g.Camera,
		Clips:     g.Clips,
		FinalPath: final,
	}

	if opts.LocalStaging {
		root := opts.ScratchRoot
		if root == "" {
			root = os.TempDir()
		}
		scratch := filepath.Join(root, fmt.Sprintf("dashmerge_%s_%s", g.Date, g.Camera))
		job.ManifestPath = filepath.Join(scratch, ManifestName(g.Date, g.Camera))
		job.OutputPath = filepath.Join(scratch, OutputName(g.Date, g.Camera, ext))
		job.Staged = true
		return job
	}

	job.ManifestPath = filepath.Join(opts.OutputDir, ManifestName(g.Date, g.Camera))
	job.OutputPath = final
	return job
}
