package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// Taxi sheet geometry: six frames side by side.
// 0 body, 1 bottom flame, 2 top flame, 3 rear flame, 4 gear, 5 complete taxi with compressed gear.
const (
	TaxiFrameWidth  = 64
	TaxiFrameHeight = 32
	TaxiFrames      = 6
)

// Regions of a taxi frame, in frame coordinates. The taxi faces right.
var (
	TaxiBody        = image.Rect(10, 8, 54, 20)
	TaxiBottomFlame = image.Rect(26, 20, 38, 32)
	TaxiTopFlame    = image.Rect(28, 0, 36, 8)
	TaxiRearFlame   = image.Rect(0, 10, 10, 18)
	TaxiGearLegs    = []image.Rectangle{image.Rect(14, 20, 18, 32), image.Rect(46, 20, 50, 32)}
	TaxiShockLegs   = []image.Rectangle{image.Rect(12, 20, 20, 26), image.Rect(44, 20, 52, 26)}
)

// Astronaut sheet geometry: 1 waiting, 4 waving, 6 jumping frames.
const (
	AstronautWidth  = 16
	AstronautHeight = 24
	AstronautFrames = 11
)

// Pad geometry. The outer PadMargin columns are transparent.
const (
	PadWidth  = 200
	PadHeight = 40
	PadMargin = 10
)

// ColorPalette defines colors for the placeholder art.
var ColorPalette = struct {
	TaxiBody   color.RGBA
	Flame      color.RGBA
	Gear       color.RGBA
	Suit       color.RGBA
	Visor      color.RGBA
	Pad        color.RGBA
	Obstacle   color.RGBA
	Pump       color.RGBA
	Gate       color.RGBA
	Lives      color.RGBA
	GaugeFull  color.RGBA
	GaugeEmpty color.RGBA
	Space      color.RGBA
}{
	TaxiBody:   color.RGBA{250, 200, 30, 255},
	Flame:      color.RGBA{255, 120, 30, 255},
	Gear:       color.RGBA{160, 160, 170, 255},
	Suit:       color.RGBA{230, 230, 240, 255},
	Visor:      color.RGBA{60, 120, 220, 255},
	Pad:        color.RGBA{90, 110, 130, 255},
	Obstacle:   color.RGBA{120, 80, 60, 255},
	Pump:       color.RGBA{200, 40, 40, 255},
	Gate:       color.RGBA{80, 200, 120, 255},
	Lives:      color.RGBA{250, 200, 30, 255},
	GaugeFull:  color.RGBA{40, 200, 60, 255},
	GaugeEmpty: color.RGBA{70, 70, 70, 255},
	Space:      color.RGBA{8, 8, 24, 255},
}

func fill(img draw.Image, r image.Rectangle, col color.Color) {
	draw.Draw(img, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

func frameOffset(i, w int) image.Point {
	return image.Pt(i*w, 0)
}

// TaxiSheet draws the six-frame taxi strip.
func TaxiSheet() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, TaxiFrameWidth*TaxiFrames, TaxiFrameHeight))
	at := func(i int, r image.Rectangle) image.Rectangle {
		return r.Add(frameOffset(i, TaxiFrameWidth))
	}

	fill(img, at(0, TaxiBody), ColorPalette.TaxiBody)
	// Windshield on the nose so the facing is visible.
	fill(img, at(0, image.Rect(44, 10, 52, 14)), ColorPalette.Visor)

	fill(img, at(1, TaxiBottomFlame), ColorPalette.Flame)
	fill(img, at(2, TaxiTopFlame), ColorPalette.Flame)
	fill(img, at(3, TaxiRearFlame), ColorPalette.Flame)
	for _, leg := range TaxiGearLegs {
		fill(img, at(4, leg), ColorPalette.Gear)
	}

	fill(img, at(5, TaxiBody), Darken(ColorPalette.TaxiBody, 0.9))
	for _, leg := range TaxiShockLegs {
		fill(img, at(5, leg), ColorPalette.Gear)
	}
	return img
}

// AstronautSheet draws the eleven-frame astronaut strip.
func AstronautSheet() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, AstronautWidth*AstronautFrames, AstronautHeight))
	for i := 0; i < AstronautFrames; i++ {
		o := frameOffset(i, AstronautWidth)
		// helmet, body, legs
		fill(img, image.Rect(4, 0, 12, 7).Add(o), ColorPalette.Suit)
		fill(img, image.Rect(6, 2, 11, 5).Add(o), ColorPalette.Visor)
		fill(img, image.Rect(3, 7, 13, 17).Add(o), ColorPalette.Suit)
		legShift := 0
		if i >= 5 {
			legShift = (i - 5) % 3
		}
		fill(img, image.Rect(4+legShift, 17, 7+legShift, 24).Add(o), ColorPalette.Suit)
		fill(img, image.Rect(9-legShift, 17, 12-legShift, 24).Add(o), ColorPalette.Suit)
		// waving arm rises over frames 1..4
		if i >= 1 && i <= 4 {
			fill(img, image.Rect(13, 7-i, 16, 11-i).Add(o), ColorPalette.Suit)
		}
	}
	return img
}

// Pad draws a landing pad; n tints it so pads are told apart.
func Pad(n int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, PadWidth, PadHeight))
	col := Lighten(ColorPalette.Pad, float64(n%5)*0.08)
	fill(img, image.Rect(PadMargin, 0, PadWidth-PadMargin, PadHeight), col)
	fill(img, image.Rect(PadMargin, 0, PadWidth-PadMargin, 3), Lighten(col, 0.4))
	return img
}

// Block draws a solid w x h rectangle.
func Block(w, h int, col color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill(img, img.Bounds(), col)
	return img
}

// Pump draws a fuel pump.
func Pump() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 30, 50))
	fill(img, image.Rect(0, 10, 30, 50), ColorPalette.Pump)
	fill(img, image.Rect(10, 0, 20, 10), Darken(ColorPalette.Pump, 0.6))
	return img
}

// Gate draws the exit gate bar.
func Gate() *image.NRGBA {
	return Block(116, 12, ColorPalette.Gate)
}

// Screen draws a full-screen backdrop with a centred banner.
func Screen(w, h int, banner color.RGBA) *image.NRGBA {
	img := Block(w, h, ColorPalette.Space)
	fill(img, image.Rect(w/4, h/3, 3*w/4, h/3+h/6), banner)
	return img
}

// Starfield draws a dark sky with a deterministic scatter of stars.
func Starfield(w, h int) *image.NRGBA {
	img := Block(w, h, ColorPalette.Space)
	seed := uint32(2463534242)
	for i := 0; i < w*h/900; i++ {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		x := int(seed % uint32(w))
		y := int((seed / uint32(w)) % uint32(h))
		img.Set(x, y, color.RGBA{255, 255, 200, 255})
	}
	return img
}

// SavePNG saves an image to a PNG file, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
