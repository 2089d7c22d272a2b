// Package taxi implements the player's vehicle: thrust, fuel, landing gear,
// touchdowns, crashes and passenger hand-over.
package taxi

import (
	"image"
	"math"
	"time"

	"github.com/rs/zerolog"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/astronaut"
	"chosenoffset.com/spacetaxi/internal/audio"
	"chosenoffset.com/spacetaxi/internal/core/collision"
	"chosenoffset.com/spacetaxi/internal/input"
	"chosenoffset.com/spacetaxi/internal/render"
	"chosenoffset.com/spacetaxi/internal/simulation"
	"chosenoffset.com/spacetaxi/internal/sprite"
	"chosenoffset.com/spacetaxi/internal/world/scenery"
)

// Vec is a sub-pixel position, velocity or acceleration.
type Vec struct {
	X, Y float64
}

// HUD receives fuel and money updates from the taxi.
type HUD interface {
	SetFuel(fuel float64)
	SetTripMoney(cents int)
	Deposit(cents int)
	LastDeposit() int
	Fine(cents int)
}

// Deps are the collaborators a taxi talks to.
type Deps struct {
	Frames *FrameSet
	Audio  audio.Sink
	HUD    HUD
	Log    zerolog.Logger
}

// Hit is the result of touching an astronaut.
type Hit int

const (
	Miss   Hit = iota
	Strike     // the astronaut was run over
	Clip       // a just-delivered passenger was brushed; fined, not fatal
)

// Taxi is the player's vehicle.
type Taxi struct {
	cfg    simulation.TaxiConfig
	frames *FrameSet
	sink   audio.Sink
	hud    HUD
	log    zerolog.Logger

	spawn image.Point

	flags Flags
	pose  Pose

	pos, vel, acc Vec
	rect          image.Rectangle
	fuel          float64

	landed    scenery.PadID
	isLanded  bool
	landedTop int

	passenger    *astronaut.Astronaut
	hasUnboarded bool

	sliding    bool
	slideFrame int
	slideClock time.Duration
	slideLeft  float64
	maxSlide   float64

	roughLanding bool
	roughClock   time.Duration
}

// New builds a taxi centred on spawn with a full tank and starts the
// reactor loop muted.
func New(spawn image.Point, cfg simulation.TaxiConfig, deps Deps) *Taxi {
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}
	t := &Taxi{
		cfg:    cfg,
		frames: deps.Frames,
		sink:   deps.Audio,
		hud:    deps.HUD,
		log:    deps.Log.With().Str("component", "taxi").Logger(),
		spawn:  spawn,
	}
	t.sink.Loop(assets.SndReactor, 0)
	t.Reset()
	return t
}

// Reset puts the taxi back on its spawn point, intact and empty.
func (t *Taxi) Reset() {
	w, h := t.frames.Size()
	t.flags = 0
	t.pose = PoseIdle
	t.rect = image.Rect(t.spawn.X-w/2, t.spawn.Y-h/2, t.spawn.X-w/2+w, t.spawn.Y-h/2+h)
	t.pos = Vec{float64(t.rect.Min.X), float64(t.rect.Min.Y)}
	t.vel, t.acc = Vec{}, Vec{}

	t.sliding, t.slideFrame, t.slideClock, t.slideLeft = false, 0, 0, 0
	t.maxSlide = float64(w / 2)
	t.roughLanding, t.roughClock = false, 0

	t.isLanded, t.landed, t.landedTop = false, 0, 0
	t.passenger = nil
	t.hasUnboarded = false

	t.fuel = t.cfg.FuelCapacity
	t.hud.SetFuel(t.fuel)
	t.hud.SetTripMoney(0)
	t.sink.SetVolume(assets.SndReactor, 0)
}

// Update applies one tick of controls, timers and kinematics.
func (t *Taxi) Update(dt time.Duration, c input.Controls) {
	if c.Action {
		t.ToggleGear()
	}
	t.applyControls(c)
	t.updateSlide(dt)
	t.updateRoughLanding(dt)

	t.vel.X += t.acc.X
	t.vel.Y += t.acc.Y
	t.vel.X *= t.cfg.Friction
	if !t.isLanded {
		t.vel.Y += t.cfg.Gravity
	}
	t.pos.X += t.vel.X
	t.pos.Y += t.vel.Y
	t.syncRect()

	if t.HasExited() {
		t.sink.SetVolume(assets.SndReactor, 0)
		return
	}
	if t.flags.Any(FlagReactors) {
		t.sink.SetVolume(assets.SndReactor, t.cfg.ReactorVolume)
	} else {
		t.sink.SetVolume(assets.SndReactor, 0)
	}
	t.pose = SelectPose(t.flags)
}

func (t *Taxi) syncRect() {
	w, h := t.rect.Dx(), t.rect.Dy()
	x, y := int(math.Round(t.pos.X)), int(math.Round(t.pos.Y))
	t.rect = image.Rect(x, y, x+w, y+h)
}

func (t *Taxi) gearOut() bool {
	return t.flags.Any(FlagGearOut | FlagGearShocks)
}

func (t *Taxi) applyControls(c input.Controls) {
	if t.IsDestroyed() {
		return
	}
	// Opposing inputs cancel the whole tick.
	if (c.Left && c.Right) || (c.Up && c.Down) {
		return
	}
	gearOut := t.gearOut()
	burn := 0.0

	if c.Left && !gearOut {
		t.flags |= FlagLeft | FlagRearReactor
		t.acc.X = max(t.acc.X-t.cfg.RearThrust, -t.cfg.MaxAccelerationX)
		burn += math.Abs(t.acc.X)
	}
	if c.Right && !gearOut {
		t.flags &^= FlagLeft
		t.flags |= FlagRearReactor
		t.acc.X = min(t.acc.X+t.cfg.RearThrust, t.cfg.MaxAccelerationX)
		burn += math.Abs(t.acc.X)
	}
	if c.Up {
		t.flags &^= FlagTopReactor
		t.flags |= FlagBottomReactor
		t.acc.Y = max(t.acc.Y-t.cfg.BottomThrust, -t.cfg.MaxAccelerationUp)
		burn += math.Abs(t.acc.Y)
		if t.isLanded {
			t.takeOff()
		}
	}
	if c.Down && !gearOut {
		t.flags &^= FlagBottomReactor
		t.flags |= FlagTopReactor
		t.acc.Y = min(t.acc.Y+t.cfg.TopThrust, t.cfg.MaxAccelerationDown)
		burn += math.Abs(t.acc.Y)
	}
	if !c.Left && !c.Right {
		t.flags &^= FlagRearReactor
		t.acc.X = 0
	}
	if !c.Up && !c.Down {
		t.flags &^= FlagTopReactor | FlagBottomReactor
		t.acc.Y = 0
	}

	t.fuel -= burn
	if t.fuel < 0 {
		t.log.Info().Msg("out of fuel")
		t.destroy()
		return
	}
	t.hud.SetFuel(t.fuel)
}

func (t *Taxi) takeOff() {
	t.isLanded, t.landed = false, 0
	t.flags &^= FlagGearOut | FlagGearShocks
	t.roughLanding = false
}

func (t *Taxi) updateSlide(dt time.Duration) {
	if !t.sliding {
		return
	}
	t.slideClock += dt
	if t.slideClock <= t.cfg.SlideFrameTime {
		return
	}
	t.slideClock = 0
	if t.slideFrame < t.cfg.SlideFrames {
		step := math.Trunc(t.slideLeft / float64(t.cfg.SlideFrames-t.slideFrame))
		t.pos.X += step
		t.slideLeft -= step
		t.slideFrame++
		return
	}
	t.sliding, t.slideFrame, t.slideLeft = false, 0, 0
}

func (t *Taxi) updateRoughLanding(dt time.Duration) {
	if !t.roughLanding {
		return
	}
	t.flags = t.flags&^FlagGearOut | FlagGearShocks
	t.roughClock += dt
	if t.roughClock > t.cfg.RoughLandingTime {
		t.flags = t.flags&^FlagGearShocks | FlagGearOut
		t.roughLanding = false
	}
}

func (t *Taxi) destroy() {
	t.flags = FlagDestroyed
	t.pose = PoseDestroyed
	t.sink.Play(assets.SndCrash)
	t.vel = Vec{}
	t.acc = Vec{0, t.cfg.CrashAcceleration}
	t.isLanded, t.landed = false, 0
	t.sliding, t.roughLanding = false, false
	t.fuel = t.cfg.FuelCapacity
	t.hud.SetFuel(t.fuel)
}

// ToggleGear deploys or retracts the landing gear. Ignored while landed or
// destroyed. Deploying cuts the top and rear reactors.
func (t *Taxi) ToggleGear() {
	if t.isLanded || t.IsDestroyed() {
		return
	}
	if !t.gearOut() {
		t.flags &^= FlagTopReactor | FlagRearReactor
		t.acc.X = 0
		t.acc.Y = min(t.acc.Y, 0)
	}
	t.flags ^= FlagGearOut
	t.flags &^= FlagGearShocks
	t.pose = SelectPose(t.flags)
}

// LandOnPad attempts a touchdown on pad. It reports true while the taxi
// rests on that pad; a repeated call on the landed pad changes nothing.
func (t *Taxi) LandOnPad(pad *scenery.Pad) bool {
	if t.IsDestroyed() {
		return false
	}
	if t.isLanded && t.landed == pad.ID() {
		return true
	}
	if !t.flags.Has(FlagGearOut) {
		return false
	}
	vy := t.vel.Y
	if vy < 0 || vy > t.cfg.RoughLandingMax {
		return false
	}
	pr := pad.Rect()
	if !collision.BoxesOverlap(t.rect, pr) {
		return false
	}
	visible := pad.Visible()
	if t.rect.Min.X < visible.Left || t.rect.Max.X > visible.Right {
		return false
	}
	if !collision.MasksOverlap(t.Mask(), t.rect.Min, pad.Mask(), pr.Min) {
		return false
	}

	h := t.rect.Dy()
	t.rect = image.Rect(t.rect.Min.X, pr.Min.Y+t.cfg.LandingSnap-h, t.rect.Max.X, pr.Min.Y+t.cfg.LandingSnap)
	t.pos.Y = float64(t.rect.Min.Y)
	t.flags &= FlagLeft | FlagGearOut

	if math.Abs(t.vel.X) > t.cfg.SlideMinVelocity {
		t.sliding, t.slideFrame, t.slideClock = true, 0, 0
		t.slideLeft = max(-t.maxSlide, min(t.vel.X*t.cfg.SlidePower, t.maxSlide))
	}
	if vy > t.cfg.SmoothLandingMax {
		t.roughLanding, t.roughClock = true, 0
		t.sink.Play(assets.SndRoughLanding)
	} else {
		t.sink.Play(assets.SndSmoothLanding)
	}
	t.log.Debug().Stringer("pad", pad.ID()).Float64("vy", vy).Bool("rough", t.roughLanding).Msg("touchdown")

	t.vel, t.acc = Vec{}, Vec{}
	t.isLanded, t.landed, t.landedTop = true, pad.ID(), pr.Min.Y
	t.pose = SelectPose(t.flags)

	if t.passenger != nil && t.passenger.Target() == pad.ID() {
		t.UnboardAstronaut()
	}
	return true
}

// CrashOnObstacle destroys the taxi when it touches o. A pad touched only by
// the bottom reactor's flame does not count.
func (t *Taxi) CrashOnObstacle(o sprite.Collidable) bool {
	if t.IsDestroyed() {
		return false
	}
	if pad, ok := o.(*scenery.Pad); ok {
		facing := facingOf(t.flags)
		pr := pad.Rect()
		flame := collision.MasksOverlap(t.frames.Mask(PoseBottomReactor, facing), t.rect.Min, pad.Mask(), pr.Min)
		body := collision.MasksOverlap(t.frames.Mask(PoseIdle, facing), t.rect.Min, pad.Mask(), pr.Min)
		if flame && !body {
			return false
		}
	}
	if !sprite.Collide(t, o) {
		return false
	}
	t.log.Info().Stringer("rect", o.Rect()).Msg("crash")
	t.destroy()
	return true
}

// HitAstronaut checks contact with a passenger standing outside. Touching the
// one just delivered fines half of the last fare and sends them home.
func (t *Taxi) HitAstronaut(a *astronaut.Astronaut) Hit {
	if t.isLanded || t.IsDestroyed() || a.IsOnboard() {
		return Miss
	}
	if !sprite.Collide(t, a) {
		return Miss
	}
	a.PlayHey()
	if t.hasUnboarded {
		a.Arrive()
		fine := t.hud.LastDeposit() / 2
		t.hud.Fine(fine)
		t.hasUnboarded = false
		t.log.Info().Int("fine", fine).Msg("clipped delivered passenger")
		return Clip
	}
	t.log.Info().Stringer("state", a.State()).Msg("astronaut struck")
	return Strike
}

// RefuelFrom reports whether the landed taxi stands at the pump.
func (t *Taxi) RefuelFrom(p *scenery.Pump) bool {
	return t.isLanded && collision.BoxesOverlap(t.rect, p.Rect())
}

// Refuel pumps one tick of fuel.
func (t *Taxi) Refuel() {
	t.fuel = min(t.cfg.FuelCapacity, t.fuel+t.cfg.RefuelPerTick)
	t.hud.SetFuel(t.fuel)
}

// BoardAstronaut takes a passenger aboard.
func (t *Taxi) BoardAstronaut(a *astronaut.Astronaut) {
	t.passenger = a
	t.hasUnboarded = false
}

// UnboardAstronaut drops the passenger off and banks the fare. A passenger
// leaving through the gate is not placed back in the world.
func (t *Taxi) UnboardAstronaut() {
	a := t.passenger
	if a == nil {
		return
	}
	if a.Target() != scenery.Up {
		a.Unboard(t.rect.Min.X+t.cfg.DropOffsetX, t.landedTop-a.Rect().Dy())
	}
	t.hud.Deposit(a.Fare())
	t.log.Info().Stringer("pad", a.Target()).Int("fare", a.Fare()).Msg("passenger delivered")
	a.SetFare(0)
	t.hud.SetTripMoney(0)
	t.hasUnboarded = true
	t.passenger = nil
}

// EndDropoffGrace forgets the last delivery so touching astronauts is fatal again.
func (t *Taxi) EndDropoffGrace() {
	t.hasUnboarded = false
}

// HasExited reports whether the taxi has left the top of the screen.
func (t *Taxi) HasExited() bool {
	return t.rect.Min.Y <= -t.rect.Dy()
}

// IsDestroyed reports whether the taxi is a wreck waiting to be reset.
func (t *Taxi) IsDestroyed() bool { return t.flags.Has(FlagDestroyed) }

// PadLandedOn returns the pad the taxi rests on.
func (t *Taxi) PadLandedOn() (scenery.PadID, bool) { return t.landed, t.isLanded }

// IsLanded reports whether the taxi rests on a pad.
func (t *Taxi) IsLanded() bool { return t.isLanded }

// Passenger returns the astronaut aboard, nil when empty.
func (t *Taxi) Passenger() *astronaut.Astronaut { return t.passenger }

// Fuel returns what is left in the tank.
func (t *Taxi) Fuel() float64 { return t.fuel }

// Flags returns the reactor, gear and facing state.
func (t *Taxi) Flags() Flags { return t.flags }

// Pose returns the frame drawn this tick.
func (t *Taxi) Pose() Pose { return t.pose }

// Velocity is in pixels per tick.
func (t *Taxi) Velocity() Vec { return t.vel }

// Acceleration is in pixels per tick squared, gravity excluded.
func (t *Taxi) Acceleration() Vec { return t.acc }

// Rect returns the screen rectangle of the current frame.
func (t *Taxi) Rect() image.Rectangle { return t.rect }

// Mask returns the mask of the current pose and facing.
func (t *Taxi) Mask() *collision.Mask {
	return t.frames.Mask(t.pose, facingOf(t.flags))
}

// Draw draws the taxi.
func (t *Taxi) Draw(screen render.Image) {
	f := t.frames.Frame(t.pose, facingOf(t.flags))
	render.DrawAt(screen, f.Image, t.rect.Min.X, t.rect.Min.Y)
}
