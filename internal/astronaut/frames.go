package astronaut

import (
	"fmt"
	"image"
	"math/rand"

	"chosenoffset.com/spacetaxi/internal/core/collision"
	"chosenoffset.com/spacetaxi/internal/sprite"
)

// Sheet layout.
const (
	waitingImages     = 1
	wavingImages      = 4
	jumpingImages     = 6
	integrationImages = 10

	// SheetFrames is the number of frames in the astronaut sheet.
	SheetFrames = waitingImages + wavingImages + jumpingImages
)

// wavingSequence plays the four waving images back and forth.
var wavingSequence = []int{0, 1, 2, 3, 2, 1, 2, 3, 2, 1, 2, 3, 2, 1, 0, 0}

// FrameSet holds the animation of every visible state. It is built once per
// level and shared by all astronauts of that level.
type FrameSet struct {
	width, height int
	byState       map[State][]sprite.Frame
}

// NewFrameSet cuts the astronaut sheet. Integration frames dissolve the
// waiting image with pixels erased at random from rng.
func NewFrameSet(sheet image.Image, maker sprite.ImageMaker, rng *rand.Rand) (*FrameSet, error) {
	s, err := sprite.NewSheet(sheet, SheetFrames)
	if err != nil {
		return nil, fmt.Errorf("astronaut sheet: %w", err)
	}
	w, h := s.FrameSize()
	fs := &FrameSet{width: w, height: h, byState: make(map[State][]sprite.Frame)}

	fs.byState[Waiting] = []sprite.Frame{sprite.NewFrame(s.Frame(0), maker)}

	integrating := make([]sprite.Frame, integrationImages)
	for k := range integrating {
		integrating[k] = dissolve(s.Frame(0), k, maker, rng)
	}
	fs.byState[Integrating] = integrating
	disintegrating := make([]sprite.Frame, integrationImages)
	for k := range integrating {
		disintegrating[k] = integrating[integrationImages-1-k]
	}
	fs.byState[Disintegrating] = disintegrating

	waving := make([]sprite.Frame, wavingImages)
	for i := range waving {
		waving[i] = sprite.NewFrame(s.Frame(waitingImages+i), maker)
	}
	seq := make([]sprite.Frame, len(wavingSequence))
	for i, idx := range wavingSequence {
		seq[i] = waving[idx]
	}
	fs.byState[Waving] = seq

	right := make([]sprite.Frame, jumpingImages)
	left := make([]sprite.Frame, jumpingImages)
	for i := range right {
		px := s.Frame(waitingImages + wavingImages + i)
		right[i] = sprite.NewFrame(px, maker)
		left[i] = sprite.NewFrame(sprite.FlipH(px), maker)
	}
	fs.byState[JumpingRight] = right
	fs.byState[JumpingLeft] = left

	return fs, nil
}

// dissolve erases most pixels above a line that drops with k. The mask keeps
// the full silhouette so a half-formed astronaut can still be hit.
func dissolve(px *image.NRGBA, k int, maker sprite.ImageMaker, rng *rand.Rand) sprite.Frame {
	mask := collision.MaskFromImage(px, collision.DefaultThreshold)
	b := px.Bounds()
	h := float64(b.Dy())
	limit := h - h/integrationImages*float64(k)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if float64(y-b.Min.Y) >= limit {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			if rng.Intn(11) > 0 {
				c := px.NRGBAAt(x, y)
				c.A = 0
				px.SetNRGBA(x, y, c)
			}
		}
	}
	return sprite.Frame{Image: maker.NewImageFromImage(px), Mask: mask}
}

// Size returns the size of one frame.
func (fs *FrameSet) Size() (w, h int) {
	return fs.width, fs.height
}

// Frames returns the animation of state s, nil for invisible states.
func (fs *FrameSet) Frames(s State) []sprite.Frame {
	return fs.byState[s]
}
