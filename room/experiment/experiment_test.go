package experiment

import (
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateExperimentName(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+-[a-z]+$`)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, GenerateExperimentName(rng))
	}

	a := GenerateExperimentName(rand.New(rand.NewSource(9)))
	b := GenerateExperimentName(rand.New(rand.NewSource(9)))
	assert.Equal(t, a, b)
}

func TestGenerateExperimentID(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	id := GenerateExperimentID(now)
	assert.Regexp(t, `^[a-z]+-[a-z]+-20240309-140507$`, id)
	assert.Equal(t, id, GenerateExperimentID(now))
}

func TestCreateExperimentDirectory(t *testing.T) {
	base := t.TempDir()

	dir, err := CreateExperimentDirectory(base)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir.Path))
	assert.Equal(t, dir.ID, filepath.Base(dir.Path))

	info, err := os.Stat(dir.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	target, err := os.Readlink(filepath.Join(base, ExperimentsDir, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(t, dir.ID, target)

	assert.Equal(t, filepath.Join(dir.Path, "captures_0.csv"), dir.GetFilePath("captures_0.csv"))

	src := filepath.Join(base, "scene.yaml")
	require.NoError(t, os.WriteFile(src, []byte("simulation:\n  seed: 3\n"), 0644))
	require.NoError(t, dir.CopyConfigFile(src))
	copied, err := os.ReadFile(dir.GetFilePath("scene.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "simulation:\n  seed: 3\n", string(copied))

	assert.Error(t, dir.CopyConfigFile(filepath.Join(base, "missing.yaml")))
}
