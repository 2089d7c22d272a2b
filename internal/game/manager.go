package game

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/audio"
	"chosenoffset.com/spacetaxi/internal/config"
	"chosenoffset.com/spacetaxi/internal/core/clock"
	"chosenoffset.com/spacetaxi/internal/gamescanner"
	"chosenoffset.com/spacetaxi/internal/hud"
	"chosenoffset.com/spacetaxi/internal/input"
	"chosenoffset.com/spacetaxi/internal/level"
	"chosenoffset.com/spacetaxi/internal/render"
	"chosenoffset.com/spacetaxi/internal/simulation"
	"chosenoffset.com/spacetaxi/internal/telemetry"
	"chosenoffset.com/spacetaxi/internal/world/maploader"
)

// MaxFrameTime caps the delta handed to the simulation after a stall.
const MaxFrameTime = 100 * time.Millisecond

// MusicRegistry binds a music file to a cue at run time. The Ebiten audio
// player implements it; sinks without it play no level music.
type MusicRegistry interface {
	Register(cue audio.Cue, path string) error
}

// Deps are the services the manager wires into every scene.
type Deps struct {
	Renderer render.Renderer
	Input    render.InputManager
	Assets   *assets.Provider
	Audio    audio.Sink
	Music    MusicRegistry
	Clock    clock.Clock
	Metrics  *telemetry.Metrics
	Log      zerolog.Logger
	Rand     *rand.Rand
}

// Manager handles the overall game state, from the splash screen through
// the levels to the game over screen.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int

	settings *config.Settings
	sim      *simulation.Config
	deps     Deps
	log      zerolog.Logger

	state   State
	ticker  *clock.Ticker
	levels  *gamescanner.Scanner
	hud     *hud.HUD
	number  int
	current *level.Level
	music   fade

	screen   render.Image
	messages []Message

	fatalFile string
	fatalLeft time.Duration
}

// NewManager creates a game manager showing the splash screen.
func NewManager(settings *config.Settings, sim *simulation.Config, deps Deps) *Manager {
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Metrics == nil {
		deps.Metrics = telemetry.Nop()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Manager{
		ScreenWidth:  settings.Window.Width,
		ScreenHeight: settings.Window.Height,
		settings:     settings,
		sim:          sim,
		deps:         deps,
		log:          deps.Log.With().Str("component", "game").Logger(),
		ticker:       clock.NewTicker(deps.Clock, MaxFrameTime),
		levels:       gamescanner.New(settings.LevelsDir(), settings.Game.LevelPattern),
		hud: hud.New(hud.Config{
			FadeIn:  sim.HUD.AnnounceFadeIn,
			Hold:    sim.HUD.AnnounceHold,
			FadeOut: sim.HUD.AnnounceFadeOut,
		}, settings.Game.Lives),
	}
	m.enterSplash()
	return m
}

// State returns the current scene.
func (m *Manager) State() State { return m.state }

// LevelNumber returns the level being loaded or played.
func (m *Manager) LevelNumber() int { return m.number }

// Level returns the running level, if any.
func (m *Manager) Level() *level.Level { return m.current }

// HUD returns the display shared by every level of a game.
func (m *Manager) HUD() *hud.HUD { return m.hud }

// Fail halts play and shows the fatal notice for err.
func (m *Manager) Fail(err error) {
	m.log.Error().Err(err).Msg("fatal error")
	m.stopMusic()
	m.deps.Audio.Stop(assets.SndSplash)
	m.deps.Audio.Stop(assets.SndReactor)
	m.current = nil
	m.screen = nil
	m.fatalFile = fatalFile(err)
	m.fatalLeft = m.settings.Game.FatalCountdown
	m.state = StateFatal
}

// fatalFile names the file behind err for the fatal notice.
func fatalFile(err error) string {
	if name, ok := assets.MissingFile(err); ok {
		return name
	}
	var ie *maploader.InvalidLevelError
	if errors.As(err, &ie) {
		return filepath.Base(ie.Path)
	}
	return err.Error()
}

// Update advances the current scene by one tick.
func (m *Manager) Update() error {
	dt := m.ticker.Tick()
	m.updateMessages(dt.Seconds())
	m.music.update(dt, m.deps.Audio)

	in := m.deps.Input
	switch m.state {
	case StateSplash:
		if input.Quit(in) {
			return render.ErrTerminated
		}
		if input.Confirm(in) {
			m.newGame()
		}
	case StateLoading:
		if input.Quit(in) {
			m.enterSplash()
			return nil
		}
		if input.Confirm(in) {
			m.play()
		}
	case StatePlaying:
		if input.Quit(in) {
			m.leaveLevel()
			m.enterSplash()
			return nil
		}
		switch m.current.Update(dt, input.Read(in)) {
		case level.Completed:
			m.completeLevel()
		case level.GameOver:
			m.leaveLevel()
			m.enterGameOver()
		}
	case StateGameOver:
		if input.Quit(in) || input.Confirm(in) {
			m.enterSplash()
		}
	case StateFatal:
		if input.Quit(in) {
			return render.ErrTerminated
		}
		m.fatalLeft -= dt
		if m.fatalLeft <= 0 {
			return render.ErrTerminated
		}
	}
	return nil
}

// Layout returns the fixed logical screen size.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}

// loadScreen fetches a full-screen picture or fails the game.
func (m *Manager) loadScreen(id assets.ID) bool {
	pic, err := m.deps.Assets.Image(id)
	if err != nil {
		m.Fail(fmt.Errorf("failed to load screen: %w", err))
		return false
	}
	m.screen = pic.Image
	return true
}

func (m *Manager) enterSplash() {
	if !m.loadScreen(assets.ImgSplash) {
		return
	}
	m.current = nil
	m.number = 0
	m.state = StateSplash
	m.deps.Audio.Loop(assets.SndSplash, 1)
	m.log.Info().Msg("splash")
}

func (m *Manager) newGame() {
	m.deps.Audio.Stop(assets.SndSplash)
	m.hud.Reset(m.settings.Game.Lives)
	m.log.Info().Int("lives", m.settings.Game.Lives).Msg("new game")
	m.enterLoading(1)
}

func (m *Manager) enterGameOver() {
	if !m.loadScreen(assets.ImgGameOver) {
		return
	}
	m.state = StateGameOver
	m.log.Info().Int("bank", m.hud.Bank()).Int("level", m.number).Msg("game over")
}

// ShowMessage adds a new message to be displayed on screen.
func (m *Manager) ShowMessage(text string) {
	m.messages = append(m.messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
	m.log.Debug().Str("text", text).Msg("message")
}

func (m *Manager) updateMessages(dt float64) {
	var active []Message
	for _, msg := range m.messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	m.messages = active
}
