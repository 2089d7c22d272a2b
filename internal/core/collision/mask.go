// Package collision provides the pixel-accurate overlap tests used by every
// actor in a level: an axis-aligned box filter and an opacity bitmask.
package collision

import (
	"image"
	"image/color"
)

// DefaultThreshold is the alpha value a pixel must exceed to be solid.
const DefaultThreshold = 127

// Mask is a per-pixel opacity bitmap. Rows are packed into 64-bit words.
type Mask struct {
	w, h  int
	words int
	bits  []uint64
}

// NewMask returns an empty mask of the given size.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	words := (w + 63) / 64
	return &Mask{w: w, h: h, words: words, bits: make([]uint64, words*h)}
}

// MaskFromImage marks every pixel whose alpha exceeds threshold.
func MaskFromImage(img image.Image, threshold uint8) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			a := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA).A
			if a > threshold {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// Size returns the mask dimensions.
func (m *Mask) Size() (w, h int) {
	return m.w, m.h
}

// Bounds returns the mask rectangle anchored at the origin.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.w, m.h)
}

// Get reports whether the pixel is solid. Out of range pixels are empty.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.words+x/64]&(1<<(uint(x)%64)) != 0
}

// Set marks or clears a pixel. Out of range pixels are ignored.
func (m *Mask) Set(x, y int, solid bool) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	i := y*m.words + x/64
	bit := uint64(1) << (uint(x) % 64)
	if solid {
		m.bits[i] |= bit
	} else {
		m.bits[i] &^= bit
	}
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// FlipH returns a horizontally mirrored copy.
func (m *Mask) FlipH() *Mask {
	out := NewMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.Get(x, y) {
				out.Set(m.w-1-x, y, true)
			}
		}
	}
	return out
}

// FlipV returns a vertically mirrored copy.
func (m *Mask) FlipV() *Mask {
	out := NewMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		copy(out.bits[(m.h-1-y)*m.words:(m.h-y)*m.words], m.bits[y*m.words:(y+1)*m.words])
	}
	return out
}

// Overlaps reports whether any solid pixel of m coincides with a solid pixel
// of other when other's origin sits at offset in m's coordinates.
func (m *Mask) Overlaps(other *Mask, offset image.Point) bool {
	_, ok := m.OverlapPoint(other, offset)
	return ok
}

// OverlapPoint returns the first coinciding pixel in m's coordinates.
func (m *Mask) OverlapPoint(other *Mask, offset image.Point) (image.Point, bool) {
	if m == nil || other == nil {
		return image.Point{}, false
	}
	area := m.Bounds().Intersect(other.Bounds().Add(offset))
	if area.Empty() {
		return image.Point{}, false
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if m.Get(x, y) && other.Get(x-offset.X, y-offset.Y) {
				return image.Pt(x, y), true
			}
		}
	}
	return image.Point{}, false
}
