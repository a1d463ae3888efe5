package merge

import "strconv"

// CopyProfile is the stream-copy tier: container-level concatenation
// without re-encoding the underlying streams.
type CopyProfile struct {
	Video string // video codec identifier, normally "copy"
	Audio string // audio codec identifier, normally "copy"
}

// ReencodeProfile is the fallback tier used when stream copy fails.
type ReencodeProfile struct {
	VideoCodec string
	AudioCodec string
	Preset     string
	CRF        string
	Threads    int // 0 lets the tool pick
}

// concatPreamble is shared by both tiers: read the manifest with the
// concat demuxer and normalize the fragment timestamps. Dashcam clips
// routinely start with negative or missing PTS at fragment boundaries.
func concatPreamble(manifest string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
	}
}

// copyArgs builds the stream-copy command line.
func copyArgs(p CopyProfile, manifest, output string) []string {
	args := concatPreamble(manifest)
	args = append(args,
		"-c:v", p.Video,
		"-c:a", p.Audio,
		"-avoid_negative_ts", "make_zero",
		"-fflags", "+genpts",
		"-y",
		output,
	)
	return args
}

// reencodeArgs builds the re-encode command line.
func reencodeArgs(p ReencodeProfile, manifest, output string) []string {
	args := concatPreamble(manifest)
	args = append(args,
		"-c:v", p.VideoCodec,
		"-c:a", p.AudioCodec,
		"-preset", p.Preset,
		"-crf", p.CRF,
	)
	if p.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(p.Threads))
	}
	args = append(args,
		"-avoid_negative_ts", "make_zero",
		"-y",
		output,
	)
	return args
}
