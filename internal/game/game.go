package game

import (
	"fmt"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/level"
	"chosenoffset.com/spacetaxi/internal/world/maploader"
)

// enterLoading reads and builds level n, then waits on the loading screen
// for the player to start it.
func (m *Manager) enterLoading(n int) {
	if !m.loadScreen(assets.ImgLoading) {
		return
	}
	m.number = n
	m.state = StateLoading
	m.deps.Audio.Play(assets.SndLoading)

	path := m.levels.Path(n)
	data, err := maploader.Load(path, m.sim.Level.DefaultFare)
	if err != nil {
		m.Fail(fmt.Errorf("failed to load level %d: %w", n, err))
		return
	}

	lvl, err := level.New(n, data, m.sim, level.Deps{
		Assets:   m.deps.Assets,
		Renderer: m.deps.Renderer,
		Audio:    m.deps.Audio,
		HUD:      m.hud,
		Metrics:  m.deps.Metrics,
		Log:      m.deps.Log,
		Rand:     m.deps.Rand,
	})
	if err != nil {
		m.Fail(fmt.Errorf("failed to build level %d: %w", n, err))
		return
	}
	m.current = lvl
	m.log.Info().Int("level", n).Str("path", path).Msg("level loaded")
}

// play starts the loaded level and its music.
func (m *Manager) play() {
	if m.current == nil {
		return
	}
	if music := m.current.Music(); music != "" && m.deps.Music != nil {
		if err := m.deps.Music.Register(MusicCue, m.deps.Assets.Resolve(music)); err != nil {
			m.Fail(fmt.Errorf("failed to load music for level %d: %w", m.number, err))
			return
		}
		m.music.cancel()
		m.deps.Audio.Loop(MusicCue, 1)
	}
	m.state = StatePlaying
	m.ShowMessage(fmt.Sprintf("LEVEL %d", m.number))
	m.log.Info().Int("level", m.number).Msg("level started")
}

// completeLevel moves on to the next level file, or ends the game when
// there is none.
func (m *Manager) completeLevel() {
	m.leaveLevel()
	m.log.Info().Int("level", m.number).Int("bank", m.hud.Bank()).Msg("level completed")
	next := m.number + 1
	if !m.levels.Exists(next) {
		m.enterGameOver()
		return
	}
	m.ShowMessage(fmt.Sprintf("LEVEL %d COMPLETE", m.number))
	m.enterLoading(next)
}

// leaveLevel silences the level and fades its music out.
func (m *Manager) leaveLevel() {
	m.deps.Audio.SetVolume(assets.SndReactor, 0)
	m.deps.Audio.Stop(assets.SndReactor)
	m.music.start(MusicCue, m.sim.Level.MusicFadeOut)
	m.current = nil
}

// stopMusic cuts the level music without a fade.
func (m *Manager) stopMusic() {
	m.music.cancel()
	m.deps.Audio.Stop(MusicCue)
}
