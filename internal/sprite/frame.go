package sprite

import (
	"image"

	"chosenoffset.com/spacetaxi/internal/core/collision"
	"chosenoffset.com/spacetaxi/internal/render"
)

// ImageMaker uploads decoded pixels as drawable images.
type ImageMaker interface {
	NewImageFromImage(img image.Image) render.Image
}

// Frame is one drawable picture and the mask of its solid pixels.
type Frame struct {
	Image render.Image
	Mask  *collision.Mask
}

// NewFrame uploads pixels and computes their mask.
func NewFrame(pixels image.Image, maker ImageMaker) Frame {
	return Frame{
		Image: maker.NewImageFromImage(pixels),
		Mask:  collision.MaskFromImage(pixels, collision.DefaultThreshold),
	}
}

// Collidable is anything with a screen rectangle and a mask aligned on it.
type Collidable interface {
	Rect() image.Rectangle
	Mask() *collision.Mask
}

// Actor is a collidable that draws itself.
type Actor interface {
	Collidable
	Draw(screen render.Image)
}

// Collide runs the box filter then confirms with the masks.
func Collide(a, b Collidable) bool {
	ra, rb := a.Rect(), b.Rect()
	if !collision.BoxesOverlap(ra, rb) {
		return false
	}
	return collision.MasksOverlap(a.Mask(), ra.Min, b.Mask(), rb.Min)
}

// Static is an actor that never moves: obstacles, pumps, backgrounds.
type Static struct {
	frame Frame
	rect  image.Rectangle
}

// NewStatic places frame with its top-left corner at pos.
func NewStatic(frame Frame, pos image.Point) *Static {
	w, h := frame.Image.Size()
	return &Static{frame: frame, rect: image.Rectangle{Min: pos, Max: pos.Add(image.Pt(w, h))}}
}

func (s *Static) Rect() image.Rectangle { return s.rect }

func (s *Static) Mask() *collision.Mask { return s.frame.Mask }

// Draw draws the frame at its position.
func (s *Static) Draw(screen render.Image) {
	render.DrawAt(screen, s.frame.Image, s.rect.Min.X, s.rect.Min.Y)
}
