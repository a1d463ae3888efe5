package catalog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/clip"
)

const testPattern = `^NO(\d{8})-(\d{6})-(\d+)([A-Z])\.MP4$`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeClip(t *testing.T, dir, name string, size int) {
	t.Helper()
	data := make([]byte, size)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	p, err := clip.NewParser(testPattern)
	require.NoError(t, err)
	return NewBuilder(p, testLogger())
}

func TestBuild_GroupsByDateAndCamera(t *testing.T) {
	front := t.TempDir()
	rear := t.TempDir()

	writeClip(t, front, "NO20250906-134056-000895F.MP4", 100)
	writeClip(t, front, "NO20250906-134156-000896F.MP4", 200)
	writeClip(t, front, "NO20250907-080000-000001F.MP4", 50)
	writeClip(t, rear, "NO20250906-134056-000895R.MP4", 80)

	b := newTestBuilder(t)
	cat := b.Build(map[string]string{"F": front, "R": rear})

	assert.Equal(t, []string{"20250906", "20250907"}, cat.Dates())
	assert.Equal(t, []string{"F", "R"}, cat.Cameras("20250906"))

	groups := cat.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "20250906", groups[0].Date)
	assert.Equal(t, "F", groups[0].Camera)
	assert.Len(t, groups[0].Clips, 2)
	assert.Equal(t, int64(300), groups[0].TotalBytes())
}

func TestBuild_SortsInCaptureOrder(t *testing.T) {
	dir := t.TempDir()

	// Written out of order on purpose.
	writeClip(t, dir, "NO20250906-134057-000896F.MP4", 1)
	writeClip(t, dir, "NO20250906-134055-000894F.MP4", 1)
	writeClip(t, dir, "NO20250906-134056-000895F.MP4", 1)

	b := newTestBuilder(t)
	cat := b.Build(map[string]string{"F": dir})

	clips := cat["20250906"]["F"]
	require.Len(t, clips, 3)
	assert.Equal(t, "000894", clips[0].Sequence)
	assert.Equal(t, "000895", clips[1].Sequence)
	assert.Equal(t, "000896", clips[2].Sequence)
	assert.Equal(t, "134055", clips[0].Time)
}

func TestBuild_MissingCameraPathIsNonFatal(t *testing.T) {
	front := t.TempDir()
	writeClip(t, front, "NO20250906-134056-000895F.MP4", 1)

	b := newTestBuilder(t)
	cat := b.Build(map[string]string{
		"F": front,
		"R": filepath.Join(front, "does-not-exist"),
	})

	require.Len(t, cat.Groups(), 1)
	assert.Equal(t, "F", cat.Groups()[0].Camera)
}

func TestBuild_ExcludesMisfiledClips(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "NO20250906-134056-000895F.MP4", 1)
	// A rear-camera clip copied into the front directory must not merge
	// into the front sequence.
	writeClip(t, dir, "NO20250906-134057-000896R.MP4", 1)
	// Unrecognized names are skipped silently.
	writeClip(t, dir, "notes.txt", 1)

	b := newTestBuilder(t)
	cat := b.Build(map[string]string{"F": dir})

	clips := cat["20250906"]["F"]
	require.Len(t, clips, 1)
	assert.Equal(t, "000895", clips[0].Sequence)
}

func TestFilterDate(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "NO20250906-134056-000895F.MP4", 1)
	writeClip(t, dir, "NO20250907-134056-000001F.MP4", 1)

	b := newTestBuilder(t)
	cat := b.Build(map[string]string{"F": dir})

	filtered, ok := cat.FilterDate("20250906")
	require.True(t, ok)
	assert.Equal(t, []string{"20250906"}, filtered.Dates())

	_, ok = cat.FilterDate("19990101")
	assert.False(t, ok)
}

func TestFilterCamera(t *testing.T) {
	front := t.TempDir()
	rear := t.TempDir()
	writeClip(t, front, "NO20250906-134056-000895F.MP4", 1)
	writeClip(t, rear, "NO20250906-134056-000895R.MP4", 1)
	writeClip(t, rear, "NO20250907-100000-000001R.MP4", 1)

	b := newTestBuilder(t)
	cat := b.Build(map[string]string{"F": front, "R": rear})

	filtered := cat.FilterCamera("R")
	groups := filtered.Groups()
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.Equal(t, "R", g.Camera)
	}
}

func TestGroup_Info(t *testing.T) {
	g := Group{
		Date:   "20250906",
		Camera: "F",
		Clips: []clip.Clip{
			{Time: "134055", Size: 100},
			{Time: "134155", Size: 200},
		},
	}
	info := g.Info()
	assert.Equal(t, "13:40:55", info.StartTime)
	assert.Equal(t, "13:41:55", info.EndTime)
	assert.Equal(t, 2, info.Files)
	assert.Equal(t, int64(300), info.TotalBytes)
}
