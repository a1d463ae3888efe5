// Package progress aggregates per-group merge progress into a single
// overall view. Workers call Update from their own goroutines; a
// Tracker serializes everything behind one mutex so readers always see
// a consistent total.
package progress

import (
	"sync"
	"time"
)

// Group is the progress of one merge job.
type Group struct {
	ID          string
	Files       int
	TotalFiles  int
	Bytes       int64
	TotalBytes  int64
	CurrentFile string
	Status      string
	StartTime   time.Time
	// Elapsed is time since StartTime, fixed at snapshot (or finish) time.
	Elapsed time.Duration
	Done    bool
	Failed  bool
}

// Percent returns the group's byte completion, clamped to [0, 100].
func (g Group) Percent() float64 {
	return percent(g.Bytes, g.TotalBytes)
}

// Throughput returns the group's bytes per second, 0 when no time has
// elapsed.
func (g Group) Throughput() float64 {
	return throughput(g.Bytes, g.Elapsed)
}

// ETA estimates the group's remaining duration, 0 while nothing has
// completed or no time has elapsed.
func (g Group) ETA() time.Duration {
	return eta(g.Percent(), g.Elapsed)
}

// Overall is the aggregate across every registered group.
type Overall struct {
	Files        int
	TotalFiles   int
	Bytes        int64
	TotalBytes   int64
	Groups       int
	DoneGroups   int
	FailedGroups int
	Elapsed      time.Duration
}

// Percent returns overall byte completion, clamped to [0, 100].
func (o Overall) Percent() float64 {
	return percent(o.Bytes, o.TotalBytes)
}

// Throughput returns bytes per second since tracking started, 0 when no
// time has elapsed.
func (o Overall) Throughput() float64 {
	return throughput(o.Bytes, o.Elapsed)
}

// ETA estimates the remaining duration by extrapolating the elapsed
// time, 0 while nothing has completed yet.
func (o Overall) ETA() time.Duration {
	return eta(o.Percent(), o.Elapsed)
}

// Snapshot is a point-in-time copy of the tracker state, safe to read
// without holding any lock.
type Snapshot struct {
	Groups  []Group
	Overall Overall
}

// Tracker collects progress updates from concurrently running jobs.
// The zero value is not usable; call NewTracker.
type Tracker struct {
	mu      sync.Mutex
	groups  map[string]*Group
	order   []string
	started time.Time
	now     func() time.Time
}

// NewTracker returns an empty tracker. The elapsed clock starts on the
// first Register call.
func NewTracker() *Tracker {
	return &Tracker{
		groups: make(map[string]*Group),
		now:    time.Now,
	}
}

// Register adds a group with its expected totals and starts its clock.
// Registering an existing ID resets that group.
func (t *Tracker) Register(id string, totalFiles int, totalBytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started.IsZero() {
		t.started = t.now()
	}
	if _, ok := t.groups[id]; !ok {
		t.order = append(t.order, id)
	}
	t.groups[id] = &Group{
		ID:         id,
		TotalFiles: totalFiles,
		TotalBytes: totalBytes,
		Status:     "waiting",
		StartTime:  t.now(),
	}
}

// Update records new progress for a group: files and bytes accounted
// for, the file currently being written, and a status line. Updates for
// unregistered IDs are dropped.
func (t *Tracker) Update(id string, files int, bytes int64, currentFile, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g, ok := t.groups[id]
	if !ok {
		return
	}
	g.Files = files
	g.Bytes = bytes
	g.CurrentFile = currentFile
	g.Status = status
}

// Finish marks a group terminal. A successful group's counters are
// pinned to the registered totals so the aggregate converges to 100%
// regardless of the granularity of earlier updates; a failed group
// keeps its last counters, so unprocessed bytes never count as done.
func (t *Tracker) Finish(id string, ok bool, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g, found := t.groups[id]
	if !found {
		return
	}
	if ok {
		g.Files = g.TotalFiles
		g.Bytes = g.TotalBytes
	} else {
		g.Failed = true
	}
	g.Status = status
	g.Done = true
	g.Elapsed = t.now().Sub(g.StartTime)
}

// Snapshot returns a consistent copy of all groups and the recomputed
// aggregate. The overall numbers are always the sum of the per-group
// numbers in the same snapshot.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	snap := Snapshot{Groups: make([]Group, 0, len(t.order))}
	o := &snap.Overall
	o.Groups = len(t.order)
	if !t.started.IsZero() {
		o.Elapsed = now.Sub(t.started)
	}
	for _, id := range t.order {
		g := *t.groups[id]
		if !g.Done {
			g.Elapsed = now.Sub(g.StartTime)
		}
		snap.Groups = append(snap.Groups, g)
		o.Files += g.Files
		o.TotalFiles += g.TotalFiles
		o.Bytes += g.Bytes
		o.TotalBytes += g.TotalBytes
		if g.Done {
			o.DoneGroups++
		}
		if g.Failed {
			o.FailedGroups++
		}
	}
	return snap
}

func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(part) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

func throughput(bytes int64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(bytes) / secs
}

func eta(pct float64, elapsed time.Duration) time.Duration {
	if pct <= 0 || elapsed <= 0 {
		return 0
	}
	return time.Duration(float64(elapsed) * (100 - pct) / pct)
}
