package display

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Outcome is one group's final result, flattened for printing.
type Outcome struct {
	Group    string
	Output   string
	Method   string
	Files    int
	Bytes    int64
	OK       bool
	Salvaged bool
	Err      error
}

// PrintSummary writes the end-of-run report: one line per group, then
// aggregate totals with grouped thousands.
func PrintSummary(w io.Writer, outcomes []Outcome, elapsed time.Duration) {
	p := message.NewPrinter(language.English)

	var files, ok, salvaged, failed int
	var bytes int64

	fmt.Fprintln(w)
	for _, o := range outcomes {
		switch {
		case o.OK && o.Salvaged:
			fmt.Fprintf(w, "  ~ %s  %s (salvaged, %s)\n", o.Group, o.Output, o.Method)
			ok++
			salvaged++
		case o.OK:
			fmt.Fprintf(w, "  ✓ %s  %s (%s, %s)\n", o.Group, o.Output, o.Method, FormatBytes(o.Bytes))
			ok++
		default:
			fmt.Fprintf(w, "  ✗ %s  %v\n", o.Group, o.Err)
			failed++
		}
		if o.OK {
			files += o.Files
			bytes += o.Bytes
		}
	}

	fmt.Fprintln(w)
	p.Fprintf(w, "  %d merged", ok)
	if salvaged > 0 {
		p.Fprintf(w, " (%d salvaged)", salvaged)
	}
	if failed > 0 {
		p.Fprintf(w, ", %d failed", failed)
	}
	p.Fprintf(w, "  ·  %d clips, %s in %s", files, FormatBytes(bytes), FormatDuration(elapsed))
	if secs := elapsed.Seconds(); secs > 0 && bytes > 0 {
		p.Fprintf(w, " (%s)", FormatRate(float64(bytes)/secs))
	}
	fmt.Fprintln(w)
}
