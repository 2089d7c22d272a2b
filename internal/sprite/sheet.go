// Package sprite holds the pixel side of every actor: sprite sheets cut into
// frames, mirroring and layering of frames, and the drawable frame paired with
// its collision mask.
package sprite

import (
	"fmt"
	"image"
	"image/draw"
)

// Sheet is a horizontal strip of equally sized frames.
type Sheet struct {
	pixels      image.Image
	frameWidth  int
	frameHeight int
	count       int
}

// NewSheet cuts pixels into count frames laid out left to right.
func NewSheet(pixels image.Image, count int) (*Sheet, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid frame count: %d", count)
	}
	b := pixels.Bounds()
	if b.Dx()%count != 0 {
		return nil, fmt.Errorf("sheet width %d is not a multiple of %d frames", b.Dx(), count)
	}
	return &Sheet{
		pixels:      pixels,
		frameWidth:  b.Dx() / count,
		frameHeight: b.Dy(),
		count:       count,
	}, nil
}

// Count returns the number of frames.
func (s *Sheet) Count() int {
	return s.count
}

// FrameSize returns the size of one frame.
func (s *Sheet) FrameSize() (w, h int) {
	return s.frameWidth, s.frameHeight
}

// FrameRect returns the rectangle of frame i in sheet coordinates.
func (s *Sheet) FrameRect(i int) image.Rectangle {
	b := s.pixels.Bounds()
	x := b.Min.X + i*s.frameWidth
	return image.Rect(x, b.Min.Y, x+s.frameWidth, b.Min.Y+s.frameHeight)
}

// Frame returns a copy of frame i anchored at the origin.
func (s *Sheet) Frame(i int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, s.frameWidth, s.frameHeight))
	r := s.FrameRect(i)
	draw.Draw(out, out.Bounds(), s.pixels, r.Min, draw.Src)
	return out
}
