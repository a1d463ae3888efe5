package progress

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mb = int64(1024 * 1024)

// fakeClock makes tracker elapsed times deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 9, 6, 13, 40, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTrackerAggregation(t *testing.T) {
	tr := NewTracker()
	tr.Register("2025-09-06/F", 3, 300*mb)
	tr.Register("2025-09-06/R", 2, 100*mb)

	tr.Update("2025-09-06/F", 1, 100*mb, "merged_2025-09-06_F.mp4", "merging")
	tr.Update("2025-09-06/R", 2, 100*mb, "", "done")

	snap := tr.Snapshot()
	assert.Equal(t, 3, snap.Overall.Files)
	assert.Equal(t, 5, snap.Overall.TotalFiles)
	assert.Equal(t, 200*mb, snap.Overall.Bytes)
	assert.Equal(t, 400*mb, snap.Overall.TotalBytes)
	assert.InDelta(t, 50.0, snap.Overall.Percent(), 0.01)
	assert.Equal(t, "merged_2025-09-06_F.mp4", snap.Groups[0].CurrentFile)

	tr.Finish("2025-09-06/F", true, "done")
	tr.Finish("2025-09-06/R", true, "done")

	snap = tr.Snapshot()
	assert.Equal(t, 5, snap.Overall.Files)
	assert.Equal(t, 400*mb, snap.Overall.Bytes)
	assert.InDelta(t, 100.0, snap.Overall.Percent(), 0.01)
	assert.Equal(t, 2, snap.Overall.DoneGroups)
	assert.Zero(t, snap.Overall.FailedGroups)
}

func TestTrackerFailedGroupKeepsLastCounters(t *testing.T) {
	tr := NewTracker()
	tr.Register("ok", 2, 100*mb)
	tr.Register("bad", 2, 100*mb)

	tr.Update("bad", 1, 40*mb, "merged.mp4", "merging")
	tr.Finish("ok", true, "done")
	tr.Finish("bad", false, "failed")

	snap := tr.Snapshot()
	// The failed group's unprocessed bytes never count as done, so the
	// aggregate stays short of 100%.
	assert.Equal(t, 140*mb, snap.Overall.Bytes)
	assert.InDelta(t, 70.0, snap.Overall.Percent(), 0.01)
	assert.Equal(t, 2, snap.Overall.DoneGroups)
	assert.Equal(t, 1, snap.Overall.FailedGroups)

	require.Len(t, snap.Groups, 2)
	assert.False(t, snap.Groups[0].Failed)
	assert.True(t, snap.Groups[1].Failed)
	assert.Equal(t, 40*mb, snap.Groups[1].Bytes)
}

func TestTrackerPerGroupElapsedAndDerived(t *testing.T) {
	clock := newFakeClock()
	tr := NewTracker()
	tr.now = clock.Now

	tr.Register("g", 2, 200*mb)

	// No time has elapsed: everything derived stays at zero instead of
	// dividing by zero.
	snap := tr.Snapshot()
	g := snap.Groups[0]
	assert.Equal(t, time.Duration(0), g.Elapsed)
	assert.Equal(t, 0.0, g.Throughput())
	assert.Equal(t, time.Duration(0), g.ETA())

	clock.Advance(10 * time.Second)
	tr.Update("g", 1, 100*mb, "merged.mp4", "merging")

	snap = tr.Snapshot()
	g = snap.Groups[0]
	assert.Equal(t, 10*time.Second, g.Elapsed)
	assert.InDelta(t, float64(10*mb), g.Throughput(), 1)
	// Half done in 10s, half remaining.
	assert.InDelta(t, float64(10*time.Second), float64(g.ETA()), float64(time.Millisecond))

	// A finished group's elapsed is pinned; the clock moving on no longer
	// changes it.
	tr.Finish("g", true, "done")
	clock.Advance(time.Minute)
	g = tr.Snapshot().Groups[0]
	assert.Equal(t, 10*time.Second, g.Elapsed)
}

func TestTrackerSnapshotOrderIsRegistrationOrder(t *testing.T) {
	tr := NewTracker()
	tr.Register("b", 1, 1)
	tr.Register("a", 1, 1)

	snap := tr.Snapshot()
	require.Len(t, snap.Groups, 2)
	assert.Equal(t, "b", snap.Groups[0].ID)
	assert.Equal(t, "a", snap.Groups[1].ID)
}

func TestTrackerUnknownGroupIgnored(t *testing.T) {
	tr := NewTracker()
	tr.Update("nope", 1, 1, "", "merging")
	tr.Finish("nope", true, "done")

	snap := tr.Snapshot()
	assert.Empty(t, snap.Groups)
	assert.Zero(t, snap.Overall.Bytes)
}

func TestPercentClampAndZeroTotal(t *testing.T) {
	g := Group{Bytes: 200, TotalBytes: 100}
	assert.Equal(t, 100.0, g.Percent())

	g = Group{Bytes: 50, TotalBytes: 0}
	assert.Equal(t, 0.0, g.Percent())
}

func TestOverallDerivedMetrics(t *testing.T) {
	o := Overall{Bytes: 100 * mb, TotalBytes: 200 * mb, Elapsed: 10 * time.Second}
	assert.InDelta(t, float64(10*mb), o.Throughput(), 1)
	// Half done in 10s, half remaining.
	assert.InDelta(t, float64(10*time.Second), float64(o.ETA()), float64(time.Millisecond))

	// No elapsed time, no progress: everything stays at zero instead of
	// dividing by zero.
	o = Overall{TotalBytes: 200 * mb}
	assert.Equal(t, 0.0, o.Throughput())
	assert.Equal(t, time.Duration(0), o.ETA())
}

func TestTrackerConcurrentUpdates(t *testing.T) {
	tr := NewTracker()
	const groups = 8
	for i := 0; i < groups; i++ {
		tr.Register(fmt.Sprintf("g%d", i), 100, 100)
	}

	var wg sync.WaitGroup
	for i := 0; i < groups; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for n := 1; n <= 100; n++ {
				tr.Update(id, n, int64(n), "merged.mp4", "merging")
			}
			tr.Finish(id, true, "done")
		}(fmt.Sprintf("g%d", i))
	}

	// Snapshots taken mid-flight must stay internally consistent.
	for i := 0; i < 50; i++ {
		snap := tr.Snapshot()
		var files int
		var bytes int64
		for _, g := range snap.Groups {
			files += g.Files
			bytes += g.Bytes
		}
		assert.Equal(t, files, snap.Overall.Files)
		assert.Equal(t, bytes, snap.Overall.Bytes)
	}

	wg.Wait()
	snap := tr.Snapshot()
	assert.Equal(t, groups*100, snap.Overall.Files)
	assert.Equal(t, int64(groups*100), snap.Overall.Bytes)
	assert.Equal(t, groups, snap.Overall.DoneGroups)
}

func TestReporterRendersAndStops(t *testing.T) {
	tr := NewTracker()
	tr.Register("g", 1, 100)

	var mu sync.Mutex
	var calls int
	r := NewReporter(tr, func(Snapshot) {
		mu.Lock()
		calls++
		mu.Unlock()
	}, 10*time.Millisecond)

	r.Start()
	time.Sleep(60 * time.Millisecond)
	r.Stop()

	mu.Lock()
	n := calls
	mu.Unlock()
	// Several ticks plus the final render on Stop.
	assert.GreaterOrEqual(t, n, 2)

	// Stop returned, so no further renders happen.
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, n, calls)
	mu.Unlock()
}
