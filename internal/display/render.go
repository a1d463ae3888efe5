package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/progress"
)

const (
	barWidth  = 24
	lineWidth = 100
)

// Renderer writes progress snapshots to a terminal. On a TTY it redraws
// one bar per group plus an overall line in place; on a pipe it emits a
// plain overall line only when the integer percentage advances, so logs
// stay readable.
type Renderer struct {
	w       io.Writer
	tty     bool
	lastPct int
	lines   int // lines drawn by the previous frame
}

// NewRenderer creates a renderer targeting w. Pass tty=false when
// stdout is piped.
func NewRenderer(w io.Writer, tty bool) *Renderer {
	return &Renderer{w: w, tty: tty, lastPct: -1}
}

// Render draws one snapshot. Satisfies progress.Render.
func (r *Renderer) Render(snap progress.Snapshot) {
	o := snap.Overall
	pct := int(o.Percent())

	if !r.tty {
		if pct == r.lastPct {
			return
		}
		r.lastPct = pct
		fmt.Fprintf(r.w, "merging: %d%% (%d/%d groups, %s of %s)\n",
			pct, o.DoneGroups, o.Groups, FormatBytes(o.Bytes), FormatBytes(o.TotalBytes))
		return
	}

	var b strings.Builder
	// Move back over the previous frame and redraw every line padded, so
	// shorter lines fully overwrite longer ones.
	if r.lines > 0 {
		fmt.Fprintf(&b, "\033[%dA", r.lines)
	}
	for _, g := range snap.Groups {
		b.WriteString("\r" + pad(groupLine(g)) + "\n")
	}
	b.WriteString("\r" + pad(overallLine(o)) + "\n")
	r.lines = len(snap.Groups) + 1
	fmt.Fprint(r.w, b.String())
}

// Clear erases the lines drawn by the last frame on a TTY.
func (r *Renderer) Clear() {
	if !r.tty || r.lines == 0 {
		return
	}
	fmt.Fprintf(r.w, "\033[%dA\033[J", r.lines)
	r.lines = 0
}

func groupLine(g progress.Group) string {
	detail := g.Status
	if g.CurrentFile != "" {
		detail = g.CurrentFile + "  " + g.Status
	}
	return fmt.Sprintf("  %-14s %s %3d%%  %s",
		g.ID, bar(g.Percent()), int(g.Percent()), detail)
}

func overallLine(o progress.Overall) string {
	return fmt.Sprintf("  [%d/%d] %s %3d%%  %s / %s  %s  ETA %s",
		o.DoneGroups, o.Groups,
		bar(o.Percent()),
		int(o.Percent()),
		FormatBytes(o.Bytes), FormatBytes(o.TotalBytes),
		FormatRate(o.Throughput()),
		FormatDuration(o.ETA()),
	)
}

func pad(line string) string {
	if n := len(line); n < lineWidth {
		return line + strings.Repeat(" ", lineWidth-n)
	}
	return line
}

func bar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
