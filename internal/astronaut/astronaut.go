// Package astronaut implements the passengers: their hailing, boarding and
// arrival behaviour and the fare that drains while they wait.
package astronaut

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/audio"
	"chosenoffset.com/spacetaxi/internal/core/collision"
	"chosenoffset.com/spacetaxi/internal/render"
	"chosenoffset.com/spacetaxi/internal/simulation"
	"chosenoffset.com/spacetaxi/internal/sprite"
	"chosenoffset.com/spacetaxi/internal/world/scenery"
)

// State is an astronaut behaviour state.
type State int

const (
	Integrating State = iota
	Waiting
	Waving
	JumpingLeft
	JumpingRight
	Onboard
	Disintegrating
	ReachedDestination
)

var stateNames = [...]string{
	Integrating:        "integrating",
	Waiting:            "waiting",
	Waving:             "waving",
	JumpingLeft:        "jumping-left",
	JumpingRight:       "jumping-right",
	Onboard:            "onboard",
	Disintegrating:     "disintegrating",
	ReachedDestination: "reached-destination",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Trip is one scheduled ride.
type Trip struct {
	Source scenery.PadID
	Target scenery.PadID // scenery.Up leaves through the gate
	Fare   int           // cents
}

// Announcer shows the requested destination.
type Announcer interface {
	AnnouncePad(n int)
}

// Deps are the collaborators an astronaut talks to.
type Deps struct {
	Pads      *scenery.Pads
	Frames    *FrameSet
	Audio     audio.Sink
	Announcer Announcer
	Rand      *rand.Rand
}

// Astronaut is a passenger.
type Astronaut struct {
	cfg  simulation.AstronautConfig
	deps Deps

	trip   Trip
	source *scenery.Pad

	state     State
	frames    []sprite.Frame
	frame     int
	frameTime time.Duration
	stateTime time.Duration

	fare      int
	fareClock time.Duration

	rect     image.Rectangle
	posX     float64
	targetX  int
	velocity float64

	wavingDelay time.Duration
	unboarded   bool
}

// New spawns an astronaut integrating on its source pad.
func New(trip Trip, cfg simulation.AstronautConfig, deps Deps) (*Astronaut, error) {
	source, ok := deps.Pads.Get(trip.Source)
	if !ok {
		return nil, fmt.Errorf("unknown source pad %d", trip.Source)
	}
	if trip.Target != scenery.Up {
		if _, ok := deps.Pads.Get(trip.Target); !ok {
			return nil, fmt.Errorf("unknown target pad %d", trip.Target)
		}
	}
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}

	a := &Astronaut{
		cfg:    cfg,
		deps:   deps,
		trip:   trip,
		source: source,
		fare:   trip.Fare,
	}
	w, h := deps.Frames.Size()
	start := source.AstronautStart()
	a.rect = image.Rect(start.X, start.Y, start.X+w, start.Y+h)
	a.posX = float64(start.X)
	a.changeState(Integrating)
	return a, nil
}

func (a *Astronaut) changeState(s State) {
	a.state = s
	a.frames = a.deps.Frames.Frames(s)
	a.frame = 0
	a.frameTime = 0
	a.stateTime = 0
}

func (a *Astronaut) frameDuration() time.Duration {
	if a.state == JumpingLeft || a.state == JumpingRight {
		return a.cfg.JumpFrameTime
	}
	return a.cfg.FrameTime
}

// loops reports whether the current animation repeats. Other animations stop
// on their last frame until the state ends.
func (a *Astronaut) loops() bool {
	switch a.state {
	case Waiting, JumpingLeft, JumpingRight:
		return true
	}
	return false
}

func (a *Astronaut) finished() bool {
	n := len(a.frames)
	return a.frame == n-1 && a.stateTime >= time.Duration(n)*a.frameDuration()
}

// Update advances the fare, the animation and the state machine by dt.
func (a *Astronaut) Update(dt time.Duration) {
	a.fareClock += dt
	for a.fareClock >= a.cfg.FareDecayEvery {
		a.fareClock -= a.cfg.FareDecayEvery
		a.fare = max(0, a.fare-a.cfg.FareDecayCents)
	}

	if a.state == Onboard || a.state == ReachedDestination {
		return
	}

	a.stateTime += dt
	a.frameTime += dt
	if ft := a.frameDuration(); a.frameTime >= ft {
		a.frameTime -= ft
		switch {
		case a.frame < len(a.frames)-1:
			a.frame++
		case a.loops():
			a.frame = 0
		}
	}

	switch a.state {
	case Integrating:
		if a.finished() {
			if a.unboarded {
				target, _ := a.deps.Pads.Get(a.trip.Target)
				a.posX = float64(a.rect.Min.X)
				a.Jump(target.AstronautEnd().X)
			} else {
				a.changeState(Waiting)
			}
		}
	case Disintegrating:
		if a.finished() {
			a.endDisintegration()
		}
	case Waiting:
		if a.stateTime >= a.wavingDelay {
			a.callTaxi()
			a.changeState(Waving)
		}
	case Waving:
		if a.finished() {
			a.changeState(Waiting)
			a.wavingDelay = a.randomDelay()
		}
	case JumpingLeft, JumpingRight:
		if a.rect.Min.X == a.targetX {
			a.changeState(Disintegrating)
			return
		}
		a.posX += a.velocity
		a.moveTo(int(math.Round(a.posX)), a.rect.Min.Y)
	}
}

func (a *Astronaut) endDisintegration() {
	if a.trip.Target != scenery.Up {
		if target, _ := a.deps.Pads.Get(a.trip.Target); a.targetX == target.AstronautEnd().X {
			a.state = ReachedDestination
			return
		}
	}
	a.state = Onboard
	a.deps.Audio.Play(assets.VoicePadPlease(int(a.trip.Target)))
	if a.deps.Announcer != nil {
		a.deps.Announcer.AnnouncePad(int(a.trip.Target))
	}
}

func (a *Astronaut) callTaxi() {
	n := 0
	if a.deps.Rand != nil {
		n = a.deps.Rand.Intn(assets.HeyTaxiVoices)
	}
	a.deps.Audio.Play(assets.VoiceHeyTaxi(n))
}

func (a *Astronaut) randomDelay() time.Duration {
	lo, hi := a.cfg.WavingDelayMin, a.cfg.WavingDelayMax
	if a.deps.Rand == nil || hi <= lo {
		return lo
	}
	return lo + time.Duration(a.deps.Rand.Float64()*float64(hi-lo))
}

func (a *Astronaut) moveTo(x, y int) {
	a.rect = image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x, y).Add(a.rect.Size())}
}

// Jump sends the astronaut walking to targetX. A target equal to the current
// position resolves on the next update.
func (a *Astronaut) Jump(targetX int) {
	a.targetX = targetX
	a.posX = float64(a.rect.Min.X)
	switch {
	case targetX < a.rect.Min.X:
		a.velocity = -a.cfg.Velocity
		a.changeState(JumpingLeft)
	case targetX > a.rect.Min.X:
		a.velocity = a.cfg.Velocity
		a.changeState(JumpingRight)
	default:
		a.velocity = 0
		a.changeState(JumpingRight)
	}
}

// Wait puts the astronaut back to waiting where it stands.
func (a *Astronaut) Wait() {
	a.changeState(Waiting)
}

// Unboard drops the astronaut at (x, y). It rematerialises, then walks to
// its target pad's arrival point.
func (a *Astronaut) Unboard(x, y int) {
	a.changeState(Integrating)
	a.moveTo(x, y)
	a.posX = float64(x)
	a.unboarded = true
}

// Arrive ends the trip on the spot.
func (a *Astronaut) Arrive() {
	a.state = ReachedDestination
}

// PlayHey plays the startled shout of an astronaut the taxi bumps into.
func (a *Astronaut) PlayHey() {
	a.deps.Audio.Play(assets.VoiceHey)
}

// Fare returns the remaining fare in cents.
func (a *Astronaut) Fare() int { return a.fare }

// SetFare replaces the remaining fare. Negative values become zero.
func (a *Astronaut) SetFare(cents int) { a.fare = max(0, cents) }

// State returns the current behaviour state.
func (a *Astronaut) State() State { return a.state }

// Source is the pad the astronaut hails from.
func (a *Astronaut) Source() scenery.PadID { return a.trip.Source }

// Target is the requested destination, scenery.Up for the exit.
func (a *Astronaut) Target() scenery.PadID { return a.trip.Target }

// Trip returns the ride this astronaut was spawned for.
func (a *Astronaut) Trip() Trip { return a.trip }

// IsOnboard reports whether the astronaut rides in the taxi.
func (a *Astronaut) IsOnboard() bool { return a.state == Onboard }

// HasReachedDestination reports whether the trip is over.
func (a *Astronaut) HasReachedDestination() bool { return a.state == ReachedDestination }

// IsWaitingForTaxi reports whether the astronaut stands hailing on its pad.
func (a *Astronaut) IsWaitingForTaxi() bool {
	return a.state == Waiting || a.state == Waving
}

func (a *Astronaut) isJumping() bool {
	return a.state == JumpingLeft || a.state == JumpingRight
}

// IsJumpingOnStartingPad reports whether the astronaut is walking on its
// source pad, which happens when the taxi leaves before it got aboard.
func (a *Astronaut) IsJumpingOnStartingPad() bool {
	if !a.isJumping() {
		return false
	}
	start := a.source.AstronautStart()
	if a.rect.Min.Y != start.Y {
		return false
	}
	return start.X <= a.rect.Min.X && a.rect.Min.X <= a.source.Rect().Max.X
}

// Rect returns the astronaut's screen rectangle.
func (a *Astronaut) Rect() image.Rectangle { return a.rect }

// Mask returns the mask of the current frame, nil while invisible.
func (a *Astronaut) Mask() *collision.Mask {
	if a.state == Onboard || a.state == ReachedDestination || len(a.frames) == 0 {
		return nil
	}
	return a.frames[a.frame].Mask
}

// Draw draws the astronaut unless it is aboard or gone.
func (a *Astronaut) Draw(screen render.Image) {
	if a.state == Onboard || a.state == ReachedDestination || len(a.frames) == 0 {
		return
	}
	render.DrawAt(screen, a.frames[a.frame].Image, a.rect.Min.X, a.rect.Min.Y)
}
