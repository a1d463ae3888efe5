package merge

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

//go:generate mockgen -destination=mocks/tool.go -package=mocks github.com/H1R0Kazu/dashcam-video-merger/internal/merge Tool

// Tool is the external transcoder boundary. The merge protocol treats it
// as a black box: a command line in, an exit status and stderr out.
type Tool interface {
	// LookPath reports whether the tool binary is available.
	LookPath() error
	// Run executes the tool and blocks until it exits. Stderr is captured
	// for diagnostics; the caller does not parse it for control flow.
	Run(ctx context.Context, args []string) (stderr string, err error)
}

// FFmpeg runs the ffmpeg binary.
type FFmpeg struct {
	Bin string
}

// NewFFmpeg returns a Tool invoking "ffmpeg" from PATH.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{Bin: "ffmpeg"}
}

func (f *FFmpeg) LookPath() error {
	if _, err := exec.LookPath(f.Bin); err != nil {
		return err
	}
	return nil
}

func (f *FFmpeg) Run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, f.Bin, args...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err != nil && errors.Is(err, exec.ErrNotFound) {
		err = ErrToolNotFound
	}
	return stderrBuf.String(), err
}
