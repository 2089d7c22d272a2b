package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `{
		"window": { "width": 800, "height": 600 },
		"game": { "lives": 3, "fatalCountdown": "3s" },
		"log": { "level": "debug" },
		"assets": { "img_taxis": "custom/taxis.png" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 800, s.Window.Width)
	assert.Equal(t, 600, s.Window.Height)
	assert.Equal(t, 3, s.Game.Lives)
	assert.Equal(t, 3*time.Second, s.Game.FatalCountdown)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "custom/taxis.png", s.Assets["img_taxis"])
	assert.Equal(t, 90, s.Game.TPS)
}

func TestLoad_DefaultValues(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, 720, s.Window.Height)
	assert.Equal(t, "Space Taxi", s.Window.Title)
	assert.Equal(t, 90, s.Game.TPS)
	assert.Equal(t, 5, s.Game.Lives)
	assert.Equal(t, int64(0), s.Game.Seed)
	assert.Equal(t, ".", s.Game.AssetsDir)
	assert.Equal(t, "levels", s.Game.LevelsDir)
	assert.Equal(t, "level%d.toml", s.Game.LevelPattern)
	assert.Equal(t, 10*time.Second, s.Game.FatalCountdown)
	assert.Equal(t, "info", s.Log.Level)
	assert.True(t, s.Log.Console)
	assert.Equal(t, "simulation.json", s.Simulation.File)
	assert.False(t, s.Metrics.Enabled)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"window": `), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"game": {"lives": 0}}`), 0644))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "invalid number of lives")
}

func TestLevelFile(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("levels", "level2.toml"), s.LevelFile(2))
}
