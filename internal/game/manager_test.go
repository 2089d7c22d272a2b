package game

import (
	"errors"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/audio"
	"chosenoffset.com/spacetaxi/internal/config"
	"chosenoffset.com/spacetaxi/internal/core/clock"
	"chosenoffset.com/spacetaxi/internal/hud"
	"chosenoffset.com/spacetaxi/internal/placeholders"
	"chosenoffset.com/spacetaxi/internal/render"
	"chosenoffset.com/spacetaxi/internal/render/headless"
	"chosenoffset.com/spacetaxi/internal/simulation"
	"chosenoffset.com/spacetaxi/internal/world/maploader"
)

type musicRecorder struct {
	paths map[audio.Cue]string
	err   error
}

func (r *musicRecorder) Register(cue audio.Cue, path string) error {
	if r.err != nil {
		return r.err
	}
	r.paths[cue] = path
	return nil
}

type fixture struct {
	root     string
	settings *config.Settings
	m        *Manager
	in       *headless.Input
	r        *headless.Renderer
	clk      *clock.Manual
	snd      *audio.Recorder
	music    *musicRecorder
}

func newFixture(t *testing.T, tweak func(*fixture)) *fixture {
	t.Helper()
	root := t.TempDir()
	catalog := assets.DefaultCatalog()
	_, err := placeholders.GenerateAndSave(root, catalog)
	require.NoError(t, err)

	settings, err := config.Load(t.TempDir())
	require.NoError(t, err)
	settings.Game.AssetsDir = root
	settings.Game.FatalCountdown = time.Second

	f := &fixture{
		root:     root,
		settings: settings,
		in:       headless.NewInput(),
		r:        headless.NewRenderer(),
		clk:      clock.NewManual(time.Unix(1000, 0)),
		snd:      audio.NewRecorder(),
		music:    &musicRecorder{paths: make(map[audio.Cue]string)},
	}
	if tweak != nil {
		tweak(f)
	}
	f.m = NewManager(settings, simulation.DefaultConfig(), Deps{
		Renderer: f.r,
		Input:    f.in,
		Assets:   assets.NewProvider(catalog, headless.NewLoader()).WithRoot(root),
		Audio:    f.snd,
		Music:    f.music,
		Clock:    f.clk,
		Log:      zerolog.Nop(),
		Rand:     rand.New(rand.NewSource(1)),
	})
	return f
}

func (f *fixture) tick(d time.Duration) error {
	f.clk.Advance(d)
	err := f.m.Update()
	f.in.Release()
	return err
}

func (f *fixture) press(t *testing.T, k render.Key) {
	t.Helper()
	f.in.JustPressed[k] = true
	require.NoError(t, f.tick(10*time.Millisecond))
}

func (f *fixture) texts() []string {
	f.r.Texts, f.r.Colors = nil, nil
	f.m.Draw(headless.NewRenderer().NewImage(f.m.ScreenWidth, f.m.ScreenHeight))
	return f.r.Texts
}

func (f *fixture) startPlaying(t *testing.T) {
	t.Helper()
	f.press(t, render.KeyEnter)
	require.Equal(t, StateLoading, f.m.State())
	f.press(t, render.KeySpace)
	require.Equal(t, StatePlaying, f.m.State())
}

func TestNewManager_ShowsSplash(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, StateSplash, f.m.State())
	assert.True(t, f.snd.Looping(assets.SndSplash))
	assert.Contains(t, f.texts(), "Press SPACE to start")

	w, h := f.m.Layout(100, 100)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestStartGame(t *testing.T) {
	f := newFixture(t, nil)

	f.press(t, render.KeyEnter)
	assert.Equal(t, StateLoading, f.m.State())
	assert.Equal(t, 1, f.m.LevelNumber())
	require.NotNil(t, f.m.Level())
	assert.False(t, f.snd.Looping(assets.SndSplash))
	assert.Equal(t, 1, f.snd.Count(assets.SndLoading))
	assert.Contains(t, f.texts(), "LEVEL 1")

	f.press(t, render.KeySpace)
	assert.Equal(t, StatePlaying, f.m.State())
	assert.Equal(t, filepath.Join(f.root, placeholders.SampleMusic), f.music.paths[MusicCue])
	assert.True(t, f.snd.Looping(MusicCue))
	assert.Equal(t, 1.0, f.snd.Volume(MusicCue))

	for rangeIter := 0; rangeIter < 10; rangeIter++ {
		require.NoError(t, f.tick(11*time.Millisecond))
	}
	assert.Equal(t, StatePlaying, f.m.State())
	texts := f.texts()
	assert.Contains(t, texts, "LEVEL 1", "the start notice is still fading")
	assert.Contains(t, texts, "  PAD 1  ")
}

func TestQuitFadesMusicOut(t *testing.T) {
	f := newFixture(t, nil)
	f.startPlaying(t)

	f.press(t, render.KeyEscape)
	assert.Equal(t, StateSplash, f.m.State())
	assert.Nil(t, f.m.Level())
	assert.True(t, f.snd.Looping(MusicCue), "the music fades rather than cuts")

	for rangeIter := 0; rangeIter < 3; rangeIter++ {
		require.NoError(t, f.tick(100*time.Millisecond))
	}
	assert.InDelta(t, 0.4, f.snd.Volume(MusicCue), 1e-9)
	assert.True(t, f.snd.Looping(MusicCue))

	// Long frames are clamped, so the ramp needs two more ticks.
	require.NoError(t, f.tick(time.Second))
	require.NoError(t, f.tick(time.Second))
	assert.False(t, f.snd.Looping(MusicCue))
	assert.Equal(t, 0.0, f.snd.Volume(MusicCue))
}

func TestCompleteLevel_LastLevelEndsTheGame(t *testing.T) {
	f := newFixture(t, nil)
	f.startPlaying(t)
	f.m.HUD().Deposit(1234)

	f.m.completeLevel()
	assert.Equal(t, StateGameOver, f.m.State())
	assert.Contains(t, f.texts(), hud.FormatBank(1234))

	f.press(t, render.KeyEnter)
	assert.Equal(t, StateSplash, f.m.State())

	f.press(t, render.KeyEnter)
	assert.Equal(t, 0, f.m.HUD().Bank(), "a new game starts with an empty bank")
	assert.Equal(t, f.settings.Game.Lives, f.m.HUD().Lives())
}

func TestCompleteLevel_LoadsNextLevel(t *testing.T) {
	f := newFixture(t, nil)
	data, err := os.ReadFile(filepath.Join(f.root, "levels", "level1.toml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "levels", "level2.toml"), data, 0o644))

	f.startPlaying(t)
	f.m.HUD().SetLives(3)
	f.m.completeLevel()

	assert.Equal(t, StateLoading, f.m.State())
	assert.Equal(t, 2, f.m.LevelNumber())
	require.NotNil(t, f.m.Level())
	assert.Equal(t, 3, f.m.Level().Lives(), "lives carry over between levels")
	assert.Contains(t, f.texts(), "LEVEL 1 COMPLETE")
}

func TestCrashingLastLifeEndsTheGame(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.settings.Game.Lives = 1 })
	f.startPlaying(t)

	// The taxi drops from the middle of the screen onto pad 2, gear up.
	for i := 0; i < 500 && f.m.State() == StatePlaying; i++ {
		require.NoError(t, f.tick(10*time.Millisecond))
	}
	assert.Equal(t, StateGameOver, f.m.State())
	assert.Equal(t, 0, f.m.HUD().Lives())
	assert.Equal(t, 1, f.snd.Count(assets.SndCrash))
}

func TestFatal_MissingLevel(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.Remove(filepath.Join(f.root, "levels", "level1.toml")))

	f.press(t, render.KeyEnter)
	assert.Equal(t, StateFatal, f.m.State())
	first, second := f.m.FatalNotice()
	assert.Equal(t, "FATAL ERROR loading level1.toml.", first)
	assert.Equal(t, "Program will be terminated in 1 second (or press ESCAPE to terminate now).", second)
	assert.Contains(t, f.texts(), first)

	require.NoError(t, f.tick(100*time.Millisecond))
	var err error
	for i := 0; i < 20 && err == nil; i++ {
		err = f.tick(100 * time.Millisecond)
	}
	assert.ErrorIs(t, err, render.ErrTerminated)
}

func TestFatal_MissingScreen(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		require.NoError(t, os.Remove(filepath.Join(f.root, "img", "splash.png")))
	})
	assert.Equal(t, StateFatal, f.m.State())
	first, _ := f.m.FatalNotice()
	assert.Equal(t, "FATAL ERROR loading splash.png.", first)

	f.in.JustPressed[render.KeyEscape] = true
	assert.ErrorIs(t, f.tick(10*time.Millisecond), render.ErrTerminated)
}

func TestFatal_InvalidLevel(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "levels", "level1.toml"), []byte("[level]\nsurface = \"\"\n"), 0o644))

	f.press(t, render.KeyEnter)
	assert.Equal(t, StateFatal, f.m.State())
	first, _ := f.m.FatalNotice()
	assert.Equal(t, "FATAL ERROR loading level1.toml.", first)
}

func TestFatal_MusicFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.music.err = assets.Missing("snd/level1.wav", errors.New("gone"))

	f.press(t, render.KeyEnter)
	f.press(t, render.KeySpace)
	assert.Equal(t, StateFatal, f.m.State())
	first, _ := f.m.FatalNotice()
	assert.Equal(t, "FATAL ERROR loading level1.wav.", first)
}

func TestFail_OtherErrors(t *testing.T) {
	f := newFixture(t, nil)
	f.m.Fail(&maploader.InvalidLevelError{Path: "levels/level7.toml", Reason: "no pads"})
	first, _ := f.m.FatalNotice()
	assert.Equal(t, "FATAL ERROR loading level7.toml.", first)

	f.m.Fail(errors.New("boom"))
	first, _ = f.m.FatalNotice()
	assert.Equal(t, "FATAL ERROR loading boom.", first)
}

func TestSplashEscapeTerminates(t *testing.T) {
	f := newFixture(t, nil)
	f.in.JustPressed[render.KeyEscape] = true
	assert.ErrorIs(t, f.tick(10*time.Millisecond), render.ErrTerminated)
}

func TestMessages(t *testing.T) {
	f := newFixture(t, nil)
	f.m.ShowMessage("hello")
	require.Len(t, f.m.messages, 1)
	assert.Equal(t, uint8(255), f.m.messages[0].Alpha())

	f.m.updateMessages(1.5)
	assert.InDelta(t, 127, float64(f.m.messages[0].Alpha()), 1)
	f.texts()
	c, ok := f.r.ColorOf("hello")
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{255, 255, 255, f.m.messages[0].Alpha()}, c)

	f.m.updateMessages(1.5)
	assert.Empty(t, f.m.messages)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "splash", StateSplash.String())
	assert.Equal(t, "fatal", StateFatal.String())
	assert.Equal(t, "State(9)", State(9).String())
}
