package display

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/progress"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
		{734003200, "700.0 MiB"},
		{5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.bytes))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{42 * time.Second, "42s"},
		{65 * time.Second, "1m05s"},
		{90 * time.Minute, "1h30m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}

func TestRendererTTYDrawsGroupAndOverallLines(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(&sb, true)

	snap := progress.Snapshot{
		Groups: []progress.Group{
			{ID: "2025-09-06/F", Bytes: 50, TotalBytes: 100,
				CurrentFile: "merged_2025-09-06_F.mp4", Status: "merging (stream copy)"},
			{ID: "2025-09-06/R", TotalBytes: 100, Status: "waiting"},
		},
		Overall: progress.Overall{
			Bytes: 50, TotalBytes: 200, Groups: 2, Elapsed: time.Second,
		},
	}
	r.Render(snap)

	out := sb.String()
	// One line per group plus the overall line; no cursor movement on the
	// first frame.
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "2025-09-06/F")
	assert.Contains(t, out, "merged_2025-09-06_F.mp4")
	assert.Contains(t, out, "waiting")
	assert.Contains(t, out, "█")

	// The next frame rewinds over all three lines before redrawing.
	sb.Reset()
	r.Render(snap)
	assert.True(t, strings.HasPrefix(sb.String(), "\033[3A"))

	// Clear erases the frame.
	sb.Reset()
	r.Clear()
	assert.Equal(t, "\033[3A\033[J", sb.String())
}

func TestRendererPipedEmitsOnPercentChange(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(&sb, false)

	snap := progress.Snapshot{Overall: progress.Overall{Bytes: 50, TotalBytes: 100}}
	r.Render(snap)
	r.Render(snap) // same percentage, suppressed
	snap.Overall.Bytes = 100
	r.Render(snap)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "50%")
	assert.Contains(t, lines[1], "100%")
}

func TestPrintSummary(t *testing.T) {
	var sb strings.Builder
	PrintSummary(&sb, []Outcome{
		{Group: "2025-09-06/F", Output: "/out/merged_2025-09-06_F.mp4", Method: "copy",
			Files: 3, Bytes: 300 << 20, OK: true},
		{Group: "2025-09-06/R", Output: "/out/merged_2025-09-06_R.mp4", Method: "reencode",
			Files: 2, Bytes: 100 << 20, OK: true, Salvaged: true},
		{Group: "2025-09-07/F", Err: errors.New("transcode failed")},
	}, 95*time.Second)

	out := sb.String()
	assert.Contains(t, out, "✓ 2025-09-06/F")
	assert.Contains(t, out, "~ 2025-09-06/R")
	assert.Contains(t, out, "✗ 2025-09-07/F")
	assert.Contains(t, out, "2 merged (1 salvaged), 1 failed")
	assert.Contains(t, out, "5 clips")
	assert.Contains(t, out, "1m35s")
	// 400 MiB over 95s.
	assert.Contains(t, out, "4.2 MiB/s")
}
