package config

import (
	"fmt"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/clip"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if len(c.CameraPaths) == 0 {
		errs = append(errs, "camera_paths: at least one camera must be configured")
	}
	for pos, dir := range c.CameraPaths {
		if dir == "" {
			errs = append(errs, fmt.Sprintf("camera_paths.%s: directory required", pos))
		}
	}

	if c.OutputDir == "" {
		errs = append(errs, "output_dir: required")
	}

	if c.VideoPattern == "" {
		errs = append(errs, "video_pattern: required")
	} else if _, err := clip.NewParser(c.VideoPattern); err != nil {
		errs = append(errs, fmt.Sprintf("video_pattern: %v", err))
	}

	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel))
	}

	if c.Performance.MaxParallel < 0 {
		errs = append(errs, fmt.Sprintf("performance.max_parallel: must be >= 0, got %d", c.Performance.MaxParallel))
	}
	if c.FFmpeg.Reencode.Threads < 0 {
		errs = append(errs, fmt.Sprintf("ffmpeg.reencode.threads: must be >= 0, got %d", c.FFmpeg.Reencode.Threads))
	}

	return errs
}
