// Package catalog discovers clip files on disk and groups them into the
// per-date, per-camera units the merger works on.
package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/clip"
)

// Catalog maps date -> camera position -> clips ordered by capture time.
// Groups are non-empty by construction: a (date, camera) key only exists
// because at least one clip was found for it.
type Catalog map[string]map[string][]clip.Clip

// Group is one unit of merge work: every clip for a single date and
// camera position, in capture order.
type Group struct {
	Date   string
	Camera string
	Clips  []clip.Clip
}

// ID identifies the group in progress reporting and logs.
func (g Group) ID() string {
	return g.Date + "/" + g.Camera
}

// TotalBytes sums the sizes of all clips in the group.
func (g Group) TotalBytes() int64 {
	var n int64
	for _, c := range g.Clips {
		n += c.Size
	}
	return n
}

// Info summarizes a group for display.
type Info struct {
	StartTime  string // HH:MM:SS of the first clip
	EndTime    string // HH:MM:SS of the last clip
	Files      int
	TotalBytes int64
}

// Info returns the group's display summary.
func (g Group) Info() Info {
	if len(g.Clips) == 0 {
		return Info{}
	}
	return Info{
		StartTime:  g.Clips[0].FormattedTime(),
		EndTime:    g.Clips[len(g.Clips)-1].FormattedTime(),
		Files:      len(g.Clips),
		TotalBytes: g.TotalBytes(),
	}
}

// Dates returns the catalog's dates in ascending order.
func (c Catalog) Dates() []string {
	dates := make([]string, 0, len(c))
	for d := range c {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Cameras returns the camera positions present for a date, sorted.
func (c Catalog) Cameras(date string) []string {
	cams := make([]string, 0, len(c[date]))
	for cam := range c[date] {
		cams = append(cams, cam)
	}
	sort.Strings(cams)
	return cams
}

// Groups flattens the catalog into merge groups, ordered by date then
// camera position.
func (c Catalog) Groups() []Group {
	var groups []Group
	for _, date := range c.Dates() {
		for _, cam := range c.Cameras(date) {
			groups = append(groups, Group{Date: date, Camera: cam, Clips: c[date][cam]})
		}
	}
	return groups
}

// FilterDate restricts the catalog to a single date. The second return
// reports whether the date was present; its absence is for the caller to
// surface, not a failure.
func (c Catalog) FilterDate(date string) (Catalog, bool) {
	cams, ok := c[date]
	if !ok {
		return Catalog{}, false
	}
	return Catalog{date: cams}, true
}

// FilterCamera restricts the catalog to a single camera position,
// dropping dates that have no clips for it.
func (c Catalog) FilterCamera(camera string) Catalog {
	out := Catalog{}
	for date, cams := range c {
		if clips, ok := cams[camera]; ok {
			out[date] = map[string][]clip.Clip{camera: clips}
		}
	}
	return out
}

// Builder scans configured camera directories and assembles a Catalog.
type Builder struct {
	parser *clip.Parser
	log    *slog.Logger
}

// NewBuilder creates a builder using the given filename parser.
func NewBuilder(parser *clip.Parser, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{parser: parser, log: log}
}

// Build enumerates every configured camera directory and groups the
// recognized clips by date and camera position. A missing or unreadable
// camera directory is a warning, not a failure: one camera being
// disconnected must not stop the others. Files whose embedded camera tag
// disagrees with the directory they were found in are excluded; they are
// misfiled or renamed and would corrupt the merge order.
func (b *Builder) Build(cameraPaths map[string]string) Catalog {
	cat := Catalog{}

	for camera, dir := range cameraPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			b.log.Warn("camera path not available, skipping", "camera", camera, "path", dir, "error", err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			fields, ok := b.parser.Parse(entry.Name())
			if !ok {
				b.log.Debug("file does not match video pattern, skipping", "file", entry.Name())
				continue
			}
			if fields.Camera != camera {
				b.log.Debug("camera tag disagrees with directory, skipping",
					"file", entry.Name(), "tag", fields.Camera, "camera", camera)
				continue
			}
			info, err := entry.Info()
			if err != nil {
				b.log.Warn("cannot stat clip, skipping", "file", entry.Name(), "error", err)
				continue
			}

			c := clip.Clip{
				Path:     filepath.Join(dir, entry.Name()),
				Date:     fields.Date,
				Time:     fields.Time,
				Sequence: fields.Sequence,
				Camera:   camera,
				Size:     info.Size(),
			}
			if cat[c.Date] == nil {
				cat[c.Date] = map[string][]clip.Clip{}
			}
			cat[c.Date][camera] = append(cat[c.Date][camera], c)
		}
	}

	// Strict (time, sequence) order within every group.
	for _, cams := range cat {
		for _, clips := range cams {
			sort.Slice(clips, func(i, j int) bool { return clips[i].Less(clips[j]) })
		}
	}

	return cat
}
