// Package headless implements the render interfaces without a window or GPU.
// Images keep only their bounds; drawing is counted but not rasterised.
// It backs the simulation tests and any tool that needs masks without a display.
package headless

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register the PNG decoder for LoadPixels
	"os"

	"chosenoffset.com/spacetaxi/internal/render"
)

// Glyph metrics used by MeasureText at scale 1.
const (
	glyphWidth  = 8
	glyphHeight = 16
)

// Renderer is a no-op render.Renderer.
type Renderer struct {
	// Texts records every string passed to DrawText, and Colors the
	// colour it was drawn in.
	Texts  []string
	Colors []color.Color
}

// NewRenderer returns a headless renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewImage returns a blank image to draw on.
func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{rect: image.Rect(0, 0, width, height)}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.Texts = append(r.Texts, text)
	r.Colors = append(r.Colors, clr)
}

// ColorOf returns the colour text was last drawn in.
func (r *Renderer) ColorOf(text string) (color.Color, bool) {
	for i := len(r.Texts) - 1; i >= 0; i-- {
		if r.Texts[i] == text {
			return r.Colors[i], true
		}
	}
	return nil, false
}

func (r *Renderer) MeasureText(text string, scale float64) (width, height int) {
	return int(float64(len(text)*glyphWidth) * scale), int(glyphHeight * scale)
}

// Image is a bounds-only render.Image. Pixels holds the source when the
// image was created from decoded data.
type Image struct {
	rect   image.Rectangle
	Pixels image.Image
	Draws  int
}

func (i *Image) Bounds() image.Rectangle { return i.rect }

func (i *Image) Size() (width, height int) { return i.rect.Dx(), i.rect.Dy() }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{rect: r.Intersect(i.rect), Pixels: i.Pixels}
}

func (i *Image) Fill(clr color.Color) {}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	i.Draws++
}

// GeoM is a translation-only matrix.
type GeoM struct {
	TX, TY float64
}

// NewGeoM returns the identity matrix.
func NewGeoM() render.GeoM {
	return &GeoM{}
}

func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
}

func (g *GeoM) Reset() {
	*g = GeoM{}
}

// Loader decodes files from disk and wraps pixels in headless images.
type Loader struct{}

// NewLoader returns a headless resource loader.
func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) LoadPixels(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func (l *Loader) NewImageFromImage(img image.Image) render.Image {
	b := img.Bounds()
	return &Image{rect: image.Rect(0, 0, b.Dx(), b.Dy()), Pixels: img}
}

// Input is a scriptable render.InputManager.
type Input struct {
	Pressed     map[render.Key]bool
	JustPressed map[render.Key]bool
	Axes        map[int]float64
	Buttons     map[int]bool
}

// NewInput returns an input manager with nothing pressed.
func NewInput() *Input {
	return &Input{
		Pressed:     make(map[render.Key]bool),
		JustPressed: make(map[render.Key]bool),
		Axes:        make(map[int]float64),
		Buttons:     make(map[int]bool),
	}
}

func (in *Input) IsKeyPressed(key render.Key) bool { return in.Pressed[key] }

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.JustPressed[key] }

func (in *Input) GamepadAxis(axis int) float64 { return in.Axes[axis] }

func (in *Input) IsGamepadButtonJustPressed(button int) bool { return in.Buttons[button] }

// Release clears every edge-triggered input.
func (in *Input) Release() {
	clear(in.JustPressed)
	clear(in.Buttons)
}

// Engine runs a game for a fixed number of ticks.
type Engine struct {
	Ticks  int
	Width  int
	Height int
	Title  string
	TPS    int
}

func (e *Engine) SetWindowSize(width, height int) {
	e.Width, e.Height = width, height
}

func (e *Engine) SetWindowTitle(title string) { e.Title = title }

func (e *Engine) SetWindowResizable(resizable bool) {}

func (e *Engine) SetTPS(tps int) { e.TPS = tps }

// RunGame calls Update and Draw Ticks times or until Update fails.
// render.ErrTerminated ends the run without error.
func (e *Engine) RunGame(game render.Game) error {
	w, h := game.Layout(e.Width, e.Height)
	screen := &Image{rect: image.Rect(0, 0, w, h)}
	for i := 0; i < e.Ticks; i++ {
		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrTerminated) {
				return nil
			}
			return err
		}
		game.Draw(screen)
	}
	return nil
}

var (
	_ render.Renderer       = (*Renderer)(nil)
	_ render.Image          = (*Image)(nil)
	_ render.ResourceLoader = (*Loader)(nil)
	_ render.InputManager   = (*Input)(nil)
	_ render.Engine         = (*Engine)(nil)
)
