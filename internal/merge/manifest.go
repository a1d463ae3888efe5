package merge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/clip"
)

// writeManifest writes the concat list the tool consumes: one absolute,
// single-quoted input path per line, in merge order. Written atomically
// so a crashed run never leaves a half-written list for the next one.
func writeManifest(path string, clips []clip.Clip) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}

	var buf bytes.Buffer
	for _, c := range clips {
		abs, err := filepath.Abs(c.Path)
		if err != nil {
			return fmt.Errorf("resolve clip path %s: %w", c.Path, err)
		}
		fmt.Fprintf(&buf, "file '%s'\n", abs)
	}

	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// removeQuiet deletes a transient file, swallowing any error. Cleanup is
// best-effort and never escalates to job failure.
func removeQuiet(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
