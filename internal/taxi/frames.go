package taxi

import (
	"fmt"
	"image"

	"chosenoffset.com/spacetaxi/internal/core/collision"
	"chosenoffset.com/spacetaxi/internal/sprite"
)

// Sheet layout: body, bottom flame, top flame, rear flame, gear, and a
// complete taxi standing on compressed gear.
const (
	sheetBody = iota
	sheetBottomFlame
	sheetTopFlame
	sheetRearFlame
	sheetGear
	sheetShocks

	// SheetFrames is the number of frames in the taxi sheet.
	SheetFrames
)

// Facing indexes the two orientations of a pose.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func facingOf(f Flags) Facing {
	if f.Has(FlagLeft) {
		return FacingLeft
	}
	return FacingRight
}

// FrameSet holds every pose in both orientations.
type FrameSet struct {
	width, height int
	frames        [poseCount][2]sprite.Frame
}

// NewFrameSet composes the poses from the taxi sheet.
func NewFrameSet(sheet image.Image, maker sprite.ImageMaker) (*FrameSet, error) {
	s, err := sprite.NewSheet(sheet, SheetFrames)
	if err != nil {
		return nil, fmt.Errorf("taxi sheet: %w", err)
	}
	fs := &FrameSet{}
	fs.width, fs.height = s.FrameSize()

	layer := func(i int) image.Image { return s.Frame(i) }
	body := layer(sheetBody)

	build := func(p Pose, px *image.NRGBA) {
		fs.frames[p][FacingRight] = sprite.NewFrame(px, maker)
		fs.frames[p][FacingLeft] = sprite.NewFrame(sprite.FlipH(px), maker)
	}
	build(PoseIdle, sprite.Clone(body))
	build(PoseBottomReactor, sprite.Compose(body, layer(sheetBottomFlame)))
	build(PoseTopReactor, sprite.Compose(body, layer(sheetTopFlame)))
	build(PoseRearReactor, sprite.Compose(body, layer(sheetRearFlame)))
	build(PoseBottomAndRearReactors, sprite.Compose(body, layer(sheetBottomFlame), layer(sheetRearFlame)))
	build(PoseTopAndRearReactors, sprite.Compose(body, layer(sheetTopFlame), layer(sheetRearFlame)))
	build(PoseGearOut, sprite.Compose(body, layer(sheetGear)))
	build(PoseGearShocks, sprite.Clone(layer(sheetShocks)))
	build(PoseGearOutAndBottomReactor, sprite.Compose(body, layer(sheetBottomFlame), layer(sheetGear)))
	build(PoseDestroyed, sprite.FlipV(body))

	// The flame under deployed gear never touches anything.
	for _, f := range []Facing{FacingRight, FacingLeft} {
		fs.frames[PoseGearOutAndBottomReactor][f].Mask = fs.frames[PoseGearOut][f].Mask
	}
	return fs, nil
}

// Size returns the size of one frame.
func (fs *FrameSet) Size() (w, h int) {
	return fs.width, fs.height
}

// Frame returns pose p facing f.
func (fs *FrameSet) Frame(p Pose, f Facing) sprite.Frame {
	return fs.frames[p][f]
}

// Mask returns the mask of pose p facing f.
func (fs *FrameSet) Mask(p Pose, f Facing) *collision.Mask {
	return fs.frames[p][f].Mask
}
