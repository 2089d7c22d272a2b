// Package hud keeps the heads-up display state (money, fuel, lives and the
// destination announcement) and draws it. It never touches simulation state;
// the level and the actors push values into it.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"chosenoffset.com/spacetaxi/internal/render"
)

// UpPad is the pad number announced for the exit.
const UpPad = 0

const (
	livesSpacing = 10
	textScale    = 1.5
	fuelScale    = 0.75
)

var (
	moneyColor    = color.RGBA{51, 51, 51, 255}
	announceColor = color.RGBA{255, 255, 255, 255}
)

// Config sets the announcement fade timings.
type Config struct {
	FadeIn  time.Duration
	Hold    time.Duration
	FadeOut time.Duration
}

// Images are the pictures the HUD draws. Any of them may be nil.
type Images struct {
	Lives      render.Image
	GaugeFull  render.Image
	GaugeEmpty render.Image
}

// HUD is the heads-up display. Money is kept in cents.
type HUD struct {
	cfg Config

	bank      int
	lastSaved int
	trip      int
	fuel      float64
	lives     int

	announcement string
	announceAge  time.Duration
	announcing   bool
}

// New returns a HUD with full fuel and the given lives.
func New(cfg Config, lives int) *HUD {
	return &HUD{cfg: cfg, fuel: 100, lives: lives}
}

// Reset starts a new game: empty bank and full lives.
func (h *HUD) Reset(lives int) {
	h.bank = 0
	h.lastSaved = 0
	h.lives = lives
}

// Deposit adds a delivered fare to the bank and remembers it.
func (h *HUD) Deposit(cents int) {
	h.bank += cents
	h.lastSaved = cents
}

// LastDeposit returns the most recent fare deposited.
func (h *HUD) LastDeposit() int {
	return h.lastSaved
}

// Fine removes cents from the bank and forgets the last deposit.
func (h *HUD) Fine(cents int) {
	h.bank -= cents
	h.lastSaved = 0
}

// Bank returns the banked money.
func (h *HUD) Bank() int {
	return h.bank
}

// SetTripMoney shows the fare of the current trip.
func (h *HUD) SetTripMoney(cents int) {
	h.trip = cents
}

// TripMoney returns the displayed trip fare.
func (h *HUD) TripMoney() int {
	return h.trip
}

// SetFuel shows the fuel level (0 to 100).
func (h *HUD) SetFuel(fuel float64) {
	h.fuel = max(0, min(100, fuel))
}

// Fuel returns the displayed fuel level.
func (h *HUD) Fuel() float64 {
	return h.fuel
}

// SetLives shows the remaining lives.
func (h *HUD) SetLives(n int) {
	h.lives = n
}

// Lives returns the displayed lives.
func (h *HUD) Lives() int {
	return h.lives
}

// AnnouncePad starts the fading "PAD n PLEASE" message; UpPad announces the exit.
func (h *HUD) AnnouncePad(n int) {
	if n == UpPad {
		h.announcement = "UP PLEASE"
	} else {
		h.announcement = fmt.Sprintf("PAD %d PLEASE", n)
	}
	h.announceAge = 0
	h.announcing = true
}

// Announcement returns the current message, empty once it has faded out.
func (h *HUD) Announcement() string {
	if !h.announcing {
		return ""
	}
	return h.announcement
}

// Update advances the announcement fade.
func (h *HUD) Update(dt time.Duration) {
	if !h.announcing {
		return
	}
	h.announceAge += dt
	if h.announceAge >= h.cfg.FadeIn+h.cfg.Hold+h.cfg.FadeOut {
		h.announcing = false
	}
}

// Opacity returns the announcement alpha for the current fade position.
func (h *HUD) Opacity() uint8 {
	if !h.announcing {
		return 0
	}
	age := h.announceAge
	switch {
	case age < h.cfg.FadeIn:
		return uint8(255 * age / h.cfg.FadeIn)
	case age < h.cfg.FadeIn+h.cfg.Hold:
		return 255
	default:
		left := h.cfg.FadeIn + h.cfg.Hold + h.cfg.FadeOut - age
		if left <= 0 || h.cfg.FadeOut <= 0 {
			return 0
		}
		return uint8(255 * left / h.cfg.FadeOut)
	}
}

// FormatBank formats banked money for display.
func FormatBank(cents int) string {
	return fmt.Sprintf("$%8.2f", float64(cents)/100)
}

// FormatTrip formats a trip fare for display.
func FormatTrip(cents int) string {
	return fmt.Sprintf("$%5.2f", float64(cents)/100)
}

// Draw renders the HUD along the bottom of screen.
func (h *HUD) Draw(screen render.Image, r render.Renderer, img Images) {
	sw, sh := screen.Size()

	if img.Lives != nil {
		iw, ih := img.Lives.Size()
		y := sh - (ih + 40)
		for n := 0; n < h.lives; n++ {
			render.DrawAt(screen, img.Lives, 20+n*(iw+livesSpacing), y)
		}
	}

	bank := FormatBank(h.bank)
	_, bh := r.MeasureText(bank, textScale)
	r.DrawText(screen, bank, 20, sh-(bh+10), moneyColor, textScale)

	trip := FormatTrip(h.trip)
	tw, th := r.MeasureText(trip, textScale)
	r.DrawText(screen, trip, sw-tw-20, sh-th-10, moneyColor, textScale)

	if msg := h.Announcement(); msg != "" {
		mw, _ := r.MeasureText(msg, textScale)
		c := color.NRGBA{announceColor.R, announceColor.G, announceColor.B, h.Opacity()}
		r.DrawText(screen, msg, (sw-mw)/2, sh/2, c, textScale)
	}

	if img.GaugeEmpty != nil && img.GaugeFull != nil {
		gw, gh := img.GaugeFull.Size()
		x, y := (sw-gw)/2, sh-gh
		render.DrawAt(screen, img.GaugeEmpty, x, y)
		if visible := int(float64(gw) * h.fuel / 100); visible > 0 {
			b := img.GaugeFull.Bounds()
			part := img.GaugeFull.SubImage(image.Rect(b.Min.X, b.Min.Y, b.Min.X+visible, b.Max.Y))
			render.DrawAt(screen, part, x, y)
		}
		r.DrawText(screen, "Fuel", sw/2, y, announceColor, fuelScale)
	}
}
