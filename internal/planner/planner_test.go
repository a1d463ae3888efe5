package planner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H1R0Kazu/dashcam-video-merger/internal/catalog"
	"github.com/H1R0Kazu/dashcam-video-merger/internal/clip"
)

func testGroup() catalog.Group {
	return catalog.Group{
		Date:   "20250906",
		Camera: "F",
		Clips: []clip.Clip{
			{Path: "/dash/front/NO20250906-134055-000894F.MP4", Size: 100},
			{Path: "/dash/front/NO20250906-134155-000895F.MP4", Size: 200},
		},
	}
}

func TestPlan_Direct(t *testing.T) {
	job := Plan(testGroup(), Options{OutputDir: "/out"})

	assert.Equal(t, filepath.Join("/out", "merged_2025-09-06_F.mp4"), job.FinalPath)
	assert.Equal(t, job.FinalPath, job.OutputPath)
	assert.Equal(t, filepath.Join("/out", "filelist_20250906_F.txt"), job.ManifestPath)
	assert.False(t, job.Staged)
	assert.Equal(t, int64(300), job.TotalBytes())
}

func TestPlan_Staged(t *testing.T) {
	job := Plan(testGroup(), Options{
		OutputDir:    "/mnt/nas/merged",
		LocalStaging: true,
		ScratchRoot:  "/tmp",
	})

	scratch := filepath.Join("/tmp", "dashmerge_20250906_F")
	assert.Equal(t, filepath.Join(scratch, "merged_2025-09-06_F.mp4"), job.OutputPath)
	assert.Equal(t, filepath.Join(scratch, "filelist_20250906_F.txt"), job.ManifestPath)
	assert.Equal(t, filepath.Join("/mnt/nas/merged", "merged_2025-09-06_F.mp4"), job.FinalPath)
	assert.True(t, job.Staged)
}

func TestPlan_Deterministic(t *testing.T) {
	opts := Options{OutputDir: "/out", LocalStaging: true, ScratchRoot: "/scratch"}

	a := Plan(testGroup(), opts)
	b := Plan(testGroup(), opts)
	require.Equal(t, a, b)
}

func TestPlan_DisjointScratchPaths(t *testing.T) {
	opts := Options{OutputDir: "/out", LocalStaging: true, ScratchRoot: "/scratch"}

	front := Plan(testGroup(), opts)

	rear := testGroup()
	rear.Camera = "R"
	other := Plan(rear, opts)

	assert.NotEqual(t, front.OutputPath, other.OutputPath)
	assert.NotEqual(t, front.ManifestPath, other.ManifestPath)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "merged_2025-09-06_F.mp4", OutputName("20250906", "F", "mp4"))
	assert.Equal(t, "filelist_20250906_R.txt", ManifestName("20250906", "R"))
}
