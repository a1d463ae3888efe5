// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel    string            `toml:"log_level"`
	CameraPaths map[string]string `toml:"camera_paths"`
	CameraNames map[string]string `toml:"camera_names"`
	OutputDir   string            `toml:"output_dir"`
	// VideoPattern matches clip filenames and must carry exactly four
	// capture groups: date, time, sequence, camera position.
	VideoPattern string            `toml:"video_pattern"`
	FFmpeg       FFmpegConfig      `toml:"ffmpeg"`
	Performance  PerformanceConfig `toml:"performance"`
	Database     DatabaseConfig    `toml:"database"`
}

type FFmpegConfig struct {
	Copy     CopyCodecConfig `toml:"copy_codec"`
	Reencode ReencodeConfig  `toml:"reencode"`
}

// CopyCodecConfig is the stream-copy tier: lossless container-level
// concatenation without touching the underlying streams.
type CopyCodecConfig struct {
	Video string `toml:"video"`
	Audio string `toml:"audio"`
}

// ReencodeConfig is the fallback tier used when stream copy fails.
type ReencodeConfig struct {
	VideoCodec string `toml:"video_codec"`
	AudioCodec string `toml:"audio_codec"`
	Preset     string `toml:"preset"`
	CRF        string `toml:"crf"`
	Threads    int    `toml:"threads"`
}

type PerformanceConfig struct {
	// UseLocalProcessing stages the manifest and merge output on local
	// scratch storage and relocates the result afterwards. This avoids
	// transcoding directly against slow network filesystems.
	UseLocalProcessing bool `toml:"use_local_processing"`
	// MaxParallel bounds concurrent group merges. Zero means unbounded:
	// ffmpeg itself is the resource-intensive unit and the OS schedules it.
	MaxParallel int `toml:"max_parallel"`
}

type DatabaseConfig struct {
	// Path to the merge-history database. Empty disables the ledger.
	Path string `toml:"path"`
}

// CameraName returns the display name for a camera position, falling
// back to the position tag itself.
func (c *Config) CameraName(pos string) string {
	if name, ok := c.CameraNames[pos]; ok {
		return name
	}
	return pos
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	// Local staging is on unless the document says otherwise.
	if !md.IsDefined("performance", "use_local_processing") {
		cfg.Performance.UseLocalProcessing = true
	}
	if cfg.FFmpeg.Copy.Video == "" {
		cfg.FFmpeg.Copy.Video = "copy"
	}
	if cfg.FFmpeg.Copy.Audio == "" {
		cfg.FFmpeg.Copy.Audio = "copy"
	}
	if cfg.FFmpeg.Reencode.VideoCodec == "" {
		cfg.FFmpeg.Reencode.VideoCodec = "libx264"
	}
	if cfg.FFmpeg.Reencode.AudioCodec == "" {
		cfg.FFmpeg.Reencode.AudioCodec = "aac"
	}
	if cfg.FFmpeg.Reencode.Preset == "" {
		cfg.FFmpeg.Reencode.Preset = "medium"
	}
	if cfg.FFmpeg.Reencode.CRF == "" {
		cfg.FFmpeg.Reencode.CRF = "23"
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
