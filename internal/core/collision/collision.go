package collision

import "image"

// BoxesOverlap reports whether two rectangles share at least one pixel.
func BoxesOverlap(a, b image.Rectangle) bool {
	return a.Overlaps(b)
}

// MasksOverlap places each mask at its screen position and tests for a
// shared solid pixel.
func MasksOverlap(a *Mask, posA image.Point, b *Mask, posB image.Point) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Overlaps(b, posB.Sub(posA))
}

// Span is a horizontal run of pixels [Left, Right).
type Span struct {
	Left, Right int
}

// Width returns the number of pixels in the span.
func (s Span) Width() int {
	return s.Right - s.Left
}

// OpaqueSpan scans one row of img and returns the run between the first and
// the last pixel with a non-zero alpha. Coordinates are relative to the
// image's left edge. The boolean is false for a fully transparent row.
func OpaqueSpan(img image.Image, row int) (Span, bool) {
	b := img.Bounds()
	y := b.Min.Y + row
	first, last := -1, -1
	for x := b.Min.X; x < b.Max.X; x++ {
		_, _, _, a := img.At(x, y).RGBA()
		if a == 0 {
			continue
		}
		if first < 0 {
			first = x - b.Min.X
		}
		last = x - b.Min.X
	}
	if first < 0 {
		return Span{}, false
	}
	return Span{Left: first, Right: last + 1}, true
}
