package progress

import (
	"time"
)

// Render draws one snapshot. Called from the reporter goroutine only.
type Render func(Snapshot)

// Reporter periodically renders tracker snapshots until stopped. It
// decouples the render cadence from however often workers push updates.
type Reporter struct {
	tracker  *Tracker
	render   Render
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewReporter creates a reporter over the tracker. A non-positive
// interval falls back to 500ms.
func NewReporter(t *Tracker, render Render, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Reporter{
		tracker:  t,
		render:   render,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the render loop. Call Stop exactly once afterwards.
func (r *Reporter) Start() {
	go r.loop()
}

// Stop ends the loop, renders one final snapshot so the display shows
// terminal state, and waits for the goroutine to exit. The wait is
// bounded; a wedged render never wedges shutdown.
func (r *Reporter) Stop() {
	close(r.stop)
	select {
	case <-r.done:
	case <-time.After(time.Second):
	}
}

func (r *Reporter) loop() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.render(r.tracker.Snapshot())
		case <-r.stop:
			r.render(r.tracker.Snapshot())
			return
		}
	}
}
