package taxi

import "fmt"

// Flags is the taxi's propulsion, gear and damage state.
type Flags uint8

const (
	FlagLeft          Flags = 1 << iota // facing left
	FlagTopReactor                      // pushing down
	FlagBottomReactor                   // pushing up
	FlagRearReactor                     // pushing forward
	FlagGearOut                         // landing gear deployed
	FlagGearShocks                      // gear compressed after a rough landing
	FlagDestroyed
)

// FlagReactors covers every thruster.
const FlagReactors = FlagTopReactor | FlagBottomReactor | FlagRearReactor

// Has reports whether every flag of x is set.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// Any reports whether at least one flag of x is set.
func (f Flags) Any(x Flags) bool {
	return f&x != 0
}

// Pose is the picture and mask the taxi shows.
type Pose int

const (
	PoseIdle Pose = iota
	PoseBottomReactor
	PoseTopReactor
	PoseRearReactor
	PoseBottomAndRearReactors
	PoseTopAndRearReactors
	PoseGearOut
	PoseGearShocks
	PoseGearOutAndBottomReactor
	PoseDestroyed

	poseCount
)

var poseNames = [poseCount]string{
	"idle", "bottom-reactor", "top-reactor", "rear-reactor",
	"bottom-and-rear-reactors", "top-and-rear-reactors",
	"gear-out", "gear-shocks", "gear-out-and-bottom-reactor", "destroyed",
}

func (p Pose) String() string {
	if p >= 0 && p < poseCount {
		return poseNames[p]
	}
	return fmt.Sprintf("Pose(%d)", int(p))
}

// SelectPose picks the pose for a flag set. Earlier rules win.
func SelectPose(f Flags) Pose {
	switch {
	case f.Has(FlagDestroyed):
		return PoseDestroyed
	case f.Has(FlagTopReactor | FlagRearReactor):
		return PoseTopAndRearReactors
	case f.Has(FlagBottomReactor | FlagRearReactor):
		return PoseBottomAndRearReactors
	case f.Has(FlagRearReactor):
		return PoseRearReactor
	case f.Has(FlagGearOut | FlagBottomReactor):
		return PoseGearOutAndBottomReactor
	case f.Has(FlagBottomReactor):
		return PoseBottomReactor
	case f.Has(FlagTopReactor):
		return PoseTopReactor
	case f.Has(FlagGearOut):
		return PoseGearOut
	case f.Has(FlagGearShocks):
		return PoseGearShocks
	default:
		return PoseIdle
	}
}
