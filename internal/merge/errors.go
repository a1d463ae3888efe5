package merge

import "errors"

var (
	// ErrToolNotFound indicates ffmpeg is not on the execution path.
	// Fatal for the affected job; escalation is pointless without the tool.
	ErrToolNotFound = errors.New("ffmpeg not found; install ffmpeg and make sure it is on PATH")

	// ErrTranscodeFailed indicates both merge tiers failed without
	// producing usable output.
	ErrTranscodeFailed = errors.New("transcode failed")

	// ErrRelocationFailed indicates the staged output could not be moved
	// to its final destination after a successful transcode.
	ErrRelocationFailed = errors.New("failed to move merged output to destination")

	// ErrNoClips indicates a job arrived with an empty clip list.
	ErrNoClips = errors.New("no clips to merge")
)
