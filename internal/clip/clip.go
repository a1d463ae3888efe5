// Package clip models the fragment files a dashcam writes and parses
// their device-assigned filenames.
package clip

import "fmt"

// Clip is one source fragment recorded by the camera. Clips are built
// once during catalog discovery and never mutated afterwards.
type Clip struct {
	Path     string // absolute path on disk
	Date     string // 8-digit capture date, e.g. "20250906"
	Time     string // 6-digit capture time, e.g. "134056"
	Sequence string // per-day counter, kept in its zero-padded textual form
	Camera   string // camera position tag, e.g. "F" or "R"
	Size     int64  // file size in bytes
}

// FormattedDate returns the capture date as YYYY-MM-DD.
func (c Clip) FormattedDate() string {
	if len(c.Date) != 8 {
		return c.Date
	}
	return c.Date[:4] + "-" + c.Date[4:6] + "-" + c.Date[6:8]
}

// FormattedTime returns the capture time as HH:MM:SS.
func (c Clip) FormattedTime() string {
	if len(c.Time) != 6 {
		return c.Time
	}
	return c.Time[:2] + ":" + c.Time[2:4] + ":" + c.Time[4:6]
}

// Less orders clips by (time, sequence) ascending. The sequence is
// compared as text, not as an integer: the device zero-pads it and may
// wrap, so the recorded textual order is the ordering that matters.
func (c Clip) Less(other Clip) bool {
	if c.Time != other.Time {
		return c.Time < other.Time
	}
	return c.Sequence < other.Sequence
}

func (c Clip) String() string {
	return fmt.Sprintf("%s %s [%s] %s", c.FormattedDate(), c.FormattedTime(), c.Camera, c.Path)
}
