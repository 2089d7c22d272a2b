// Package scenery holds the passive level entities: landing pads, obstacles,
// fuel pumps and the exit gate. None of them update; pads precompute where
// astronauts appear and vanish, and the gate only opens and closes.
package scenery

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/spacetaxi/internal/core/collision"
	"chosenoffset.com/spacetaxi/internal/render"
	"chosenoffset.com/spacetaxi/internal/sprite"
)

// PadID is a pad number as written on its label. Up stands for the exit.
type PadID int

// Up is the destination of astronauts who leave through the gate.
const Up PadID = 0

func (id PadID) String() string {
	if id == Up {
		return "UP"
	}
	return fmt.Sprintf("PAD %d", int(id))
}

// ErrNoSurface is returned for a pad image whose top row is fully transparent.
var ErrNoSurface = errors.New("pad has no visible surface")

const (
	labelScale   = 0.7
	labelPadding = 4
)

var (
	labelText       = color.RGBA{255, 255, 255, 255}
	labelBackground = color.RGBA{0, 0, 0, 128}
)

// PadSpec places a pad. Anchors are offsets from the pad's left edge; when
// HasAnchors is false they are derived from the pad's visible surface.
type PadSpec struct {
	ID         PadID
	Pos        image.Point
	StartX     int
	EndX       int
	HasAnchors bool
}

// Label is the pad's name plate, in pad-local coordinates.
type Label struct {
	Text       string
	TextPos    image.Point
	Background image.Rectangle
}

// Pad is a landing platform.
type Pad struct {
	id      PadID
	frame   sprite.Frame
	rect    image.Rectangle
	visible collision.Span
	start   image.Point
	end     image.Point
	label   Label
}

// PadGeometry is what a pad needs to know about the actors that use it.
type PadGeometry struct {
	AstronautWidth int // used to derive the arrival anchor
	StandOffset    int // astronauts stand this far above the pad
}

// NewPad builds a pad from its decoded pixels and drawable frame.
func NewPad(spec PadSpec, pixels image.Image, frame sprite.Frame, m render.TextMeasurer, g PadGeometry) (*Pad, error) {
	if spec.ID <= Up {
		return nil, fmt.Errorf("invalid pad number %d", spec.ID)
	}
	span, ok := collision.OpaqueSpan(pixels, 0)
	if !ok {
		return nil, fmt.Errorf("pad %d: %w", spec.ID, ErrNoSurface)
	}

	b := pixels.Bounds()
	p := &Pad{
		id:      spec.ID,
		frame:   frame,
		rect:    image.Rectangle{Min: spec.Pos, Max: spec.Pos.Add(b.Size())},
		visible: collision.Span{Left: spec.Pos.X + span.Left, Right: spec.Pos.X + span.Right},
	}

	startX, endX := spec.StartX, spec.EndX
	if !spec.HasAnchors {
		startX = span.Left + labelPadding
		endX = span.Right - labelPadding - g.AstronautWidth
	}
	y := spec.Pos.Y - g.StandOffset
	p.start = image.Pt(spec.Pos.X+startX, y)
	p.end = image.Pt(spec.Pos.X+endX, y)

	p.label = layoutLabel(spec.ID, span, m)
	return p, nil
}

// layoutLabel centres "  PAD n  " over the visible span on a rounded
// background as tall as the text plus padding and as wide as the text plus
// that height, leaving room for the rounded ends.
func layoutLabel(id PadID, span collision.Span, m render.TextMeasurer) Label {
	text := fmt.Sprintf("  PAD %d  ", int(id))
	tw, th := m.MeasureText(text, labelScale)
	bh := th + labelPadding
	bw := tw + bh

	bx := (span.Width()-bw)/2 + span.Left
	return Label{
		Text:       text,
		TextPos:    image.Pt((span.Width()-tw)/2+span.Left+1, 3),
		Background: image.Rect(bx, 2, bx+bw, 2+bh),
	}
}

// ID returns the pad number.
func (p *Pad) ID() PadID { return p.id }

func (p *Pad) Rect() image.Rectangle { return p.rect }

func (p *Pad) Mask() *collision.Mask { return p.frame.Mask }

// Visible returns the screen span of the pad's top surface, excluding
// transparent margins.
func (p *Pad) Visible() collision.Span { return p.visible }

// AstronautStart is where astronauts appear.
func (p *Pad) AstronautStart() image.Point { return p.start }

// AstronautEnd is where arriving astronauts walk to before vanishing.
func (p *Pad) AstronautEnd() image.Point { return p.end }

// Label returns the name plate layout.
func (p *Pad) Label() Label { return p.label }

// Draw draws the pad and its name plate.
func (p *Pad) Draw(screen render.Image, r render.Renderer) {
	render.DrawAt(screen, p.frame.Image, p.rect.Min.X, p.rect.Min.Y)

	bg := p.label.Background.Add(p.rect.Min)
	radius := float32(bg.Dy()) / 2
	r.FillCircle(screen, float32(bg.Min.X)+radius, float32(bg.Min.Y)+radius, radius, labelBackground)
	r.FillCircle(screen, float32(bg.Max.X)-radius, float32(bg.Min.Y)+radius, radius, labelBackground)
	r.FillRect(screen, float32(bg.Min.X)+radius, float32(bg.Min.Y), float32(bg.Dx())-2*radius, float32(bg.Dy()), labelBackground)

	pos := p.label.TextPos.Add(p.rect.Min)
	r.DrawText(screen, p.label.Text, pos.X, pos.Y, labelText, labelScale)
}
