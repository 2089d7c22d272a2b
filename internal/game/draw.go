package game

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/spacetaxi/internal/hud"
	"chosenoffset.com/spacetaxi/internal/render"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	textColor       = color.RGBA{255, 255, 255, 255}
	fatalColor      = color.RGBA{255, 80, 80, 255}
)

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.state {
	case StateSplash:
		m.drawScreen(screen)
		m.drawCentred(screen, "Press SPACE to start", m.ScreenHeight*3/4, 1.5, textColor)
	case StateLoading:
		m.drawScreen(screen)
		m.drawCentred(screen, fmt.Sprintf("LEVEL %d", m.number), m.ScreenHeight/2, 2, textColor)
		m.drawCentred(screen, "Press SPACE to play", m.ScreenHeight*3/4, 1.5, textColor)
	case StatePlaying:
		if m.current != nil {
			m.current.Draw(screen)
		}
	case StateGameOver:
		m.drawScreen(screen)
		m.drawCentred(screen, hud.FormatBank(m.hud.Bank()), m.ScreenHeight*3/4, 2, textColor)
	case StateFatal:
		m.drawFatal(screen)
	}
	m.drawMessages(screen)
}

func (m *Manager) drawScreen(screen render.Image) {
	screen.Fill(backgroundColor)
	if m.screen != nil {
		render.DrawAt(screen, m.screen, 0, 0)
	}
}

func (m *Manager) drawCentred(screen render.Image, text string, y int, scale float64, clr color.Color) {
	w, _ := m.deps.Renderer.MeasureText(text, scale)
	m.deps.Renderer.DrawText(screen, text, (m.ScreenWidth-w)/2, y, clr, scale)
}

// FatalNotice returns the two lines shown while the game counts down to exit.
func (m *Manager) FatalNotice() (string, string) {
	secs := int(math.Ceil(m.fatalLeft.Seconds()))
	if secs < 0 {
		secs = 0
	}
	unit := "seconds"
	if secs == 1 {
		unit = "second"
	}
	return fmt.Sprintf("FATAL ERROR loading %s.", m.fatalFile),
		fmt.Sprintf("Program will be terminated in %d %s (or press ESCAPE to terminate now).", secs, unit)
}

func (m *Manager) drawFatal(screen render.Image) {
	screen.Fill(backgroundColor)
	first, second := m.FatalNotice()
	_, h := m.deps.Renderer.MeasureText(first, 1.5)
	y := m.ScreenHeight/2 - h
	m.drawCentred(screen, first, y, 1.5, fatalColor)
	m.drawCentred(screen, second, y+h+10, 1, textColor)
}

func (m *Manager) drawMessages(screen render.Image) {
	y := 50
	for _, msg := range m.messages {
		c := color.NRGBA{textColor.R, textColor.G, textColor.B, msg.Alpha()}
		m.drawCentred(screen, msg.Text, y, 1.5, c)
		y += 30
	}
}
