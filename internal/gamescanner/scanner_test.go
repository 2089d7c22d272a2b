package gamescanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("[level]\n"), 0o644))
}

func TestScanLevels(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "level2.toml"))
	touch(t, filepath.Join(dir, "level10.toml"))
	touch(t, filepath.Join(dir, "level1.toml"))
	touch(t, filepath.Join(dir, "level1.toml.bak"))
	touch(t, filepath.Join(dir, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "level3.toml"), 0o755))

	levels, err := ScanLevels(dir, "level%d.toml")
	require.NoError(t, err)

	var numbers []int
	for _, l := range levels {
		numbers = append(numbers, l.Number)
	}
	assert.Equal(t, []int{1, 2, 10}, numbers)
	assert.Equal(t, filepath.Join(dir, "level1.toml"), levels[0].Path)
}

func TestScanLevels_MissingDir(t *testing.T) {
	_, err := ScanLevels(filepath.Join(t.TempDir(), "nope"), "level%d.toml")
	assert.Error(t, err)
}

func TestScanner(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "level1.toml"))
	s := New(dir, "level%d.toml")

	assert.Equal(t, filepath.Join(dir, "level2.toml"), s.Path(2))
	assert.True(t, s.Exists(1))
	assert.False(t, s.Exists(2))

	levels, err := s.Scan()
	require.NoError(t, err)
	assert.Len(t, levels, 1)
}
