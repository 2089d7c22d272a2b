// Package level runs one level: it owns the scenery, the taxi and the queue
// of passengers and applies the tick rules between them.
package level

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/astronaut"
	"chosenoffset.com/spacetaxi/internal/audio"
	"chosenoffset.com/spacetaxi/internal/core/collision"
	"chosenoffset.com/spacetaxi/internal/hud"
	"chosenoffset.com/spacetaxi/internal/input"
	"chosenoffset.com/spacetaxi/internal/render"
	"chosenoffset.com/spacetaxi/internal/simulation"
	"chosenoffset.com/spacetaxi/internal/sprite"
	"chosenoffset.com/spacetaxi/internal/taxi"
	"chosenoffset.com/spacetaxi/internal/telemetry"
	"chosenoffset.com/spacetaxi/internal/world/maploader"
	"chosenoffset.com/spacetaxi/internal/world/scenery"
)

// Outcome is what a tick means for the level as a whole.
type Outcome int

const (
	None Outcome = iota
	Completed
	GameOver
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case Completed:
		return "completed"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Deps are the services a level draws on.
type Deps struct {
	Assets   *assets.Provider
	Renderer render.Renderer
	Audio    audio.Sink
	HUD      *hud.HUD
	Metrics  *telemetry.Metrics
	Log      zerolog.Logger
	Rand     *rand.Rand
}

// Level is one playable level.
type Level struct {
	number int
	cfg    *simulation.Config
	deps   Deps
	log    zerolog.Logger

	surface   render.Image
	music     string
	hudImages hud.Images

	pads      *scenery.Pads
	obstacles []*scenery.Obstacle
	pumps     []*scenery.Pump
	gate      *scenery.Gate

	taxi        *taxi.Taxi
	astroFrames *astronaut.FrameSet

	trips      []astronaut.Trip
	index      int
	astronaut  *astronaut.Astronaut
	spawnClock time.Duration

	lives   int
	outcome Outcome
}

func frameOf(pic *assets.Picture) sprite.Frame {
	return sprite.Frame{
		Image: pic.Image,
		Mask:  collision.MaskFromImage(pic.Pixels, collision.DefaultThreshold),
	}
}

func pt(p maploader.Placement) image.Point {
	return image.Pt(p.X, p.Y)
}

// New builds level number n from its description. Lives are taken from the HUD.
func New(n int, data *maploader.Level, cfg *simulation.Config, deps Deps) (*Level, error) {
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = telemetry.Nop()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	l := &Level{
		number: n,
		cfg:    cfg,
		deps:   deps,
		log:    deps.Log.With().Int("level", n).Logger(),
		music:  data.Music,
		lives:  deps.HUD.Lives(),
	}
	p := deps.Assets

	surface, err := p.File(data.Surface)
	if err != nil {
		return nil, err
	}
	l.surface = surface.Image

	if err := l.loadHUDImages(); err != nil {
		return nil, err
	}

	astroSheet, err := p.Image(assets.ImgAstronaut)
	if err != nil {
		return nil, err
	}
	l.astroFrames, err = astronaut.NewFrameSet(astroSheet.Pixels, p.Loader(), deps.Rand)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", n, err)
	}
	astroW, _ := l.astroFrames.Size()

	geom := scenery.PadGeometry{AstronautWidth: astroW, StandOffset: cfg.Astronaut.PadOffsetY}
	var pads []*scenery.Pad
	for _, rec := range data.Pads {
		pic, err := p.File(rec.Image)
		if err != nil {
			return nil, err
		}
		pad, err := scenery.NewPad(rec.Spec(), pic.Pixels, frameOf(pic), deps.Renderer, geom)
		if err != nil {
			return nil, fmt.Errorf("level %d pad %d: %w", n, rec.ID, err)
		}
		pads = append(pads, pad)
	}
	if l.pads, err = scenery.NewPads(pads...); err != nil {
		return nil, fmt.Errorf("level %d: %w", n, err)
	}

	for _, o := range data.Obstacles {
		pic, err := p.File(o.Image)
		if err != nil {
			return nil, err
		}
		l.obstacles = append(l.obstacles, scenery.NewObstacle(frameOf(pic), pt(o)))
	}
	for _, o := range data.Pumps {
		pic, err := p.File(o.Image)
		if err != nil {
			return nil, err
		}
		l.pumps = append(l.pumps, scenery.NewPump(frameOf(pic), pt(o)))
	}
	gatePic, err := p.File(data.Gate.Image)
	if err != nil {
		return nil, err
	}
	l.gate = scenery.NewGate(frameOf(gatePic), pt(data.Gate))

	for _, t := range data.Trips {
		trip := astronaut.Trip{Source: t.Source, Target: t.Target, Fare: t.Fare}
		if _, ok := l.pads.Get(trip.Source); !ok {
			return nil, fmt.Errorf("level %d: trip from unknown pad %d", n, trip.Source)
		}
		l.trips = append(l.trips, trip)
	}

	taxiSheet, err := p.Image(assets.ImgTaxis)
	if err != nil {
		return nil, err
	}
	taxiFrames, err := taxi.NewFrameSet(taxiSheet.Pixels, p.Loader())
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", n, err)
	}
	sw, sh := l.surface.Size()
	l.taxi = taxi.New(image.Pt(sw/2, sh/2), cfg.Taxi, taxi.Deps{
		Frames: taxiFrames,
		Audio:  deps.Audio,
		HUD:    deps.HUD,
		Log:    l.log,
	})

	l.retry()
	deps.HUD.SetLives(l.lives)
	l.log.Info().Int("pads", l.pads.Len()).Int("trips", len(l.trips)).Msg("level ready")
	return l, nil
}

func (l *Level) loadHUDImages() error {
	for _, e := range []struct {
		id  assets.ID
		dst *render.Image
	}{
		{assets.ImgLives, &l.hudImages.Lives},
		{assets.ImgFuelGaugeFull, &l.hudImages.GaugeFull},
		{assets.ImgFuelGaugeEmpty, &l.hudImages.GaugeEmpty},
	} {
		pic, err := l.deps.Assets.Image(e.id)
		if err != nil {
			return err
		}
		*e.dst = pic.Image
	}
	return nil
}

// retry restores the level to how it was before the current trip.
func (l *Level) retry() {
	l.gate.Close()
	l.spawnClock = 0
	l.astronaut = nil
}

func (l *Level) spawn() {
	a, err := astronaut.New(l.trips[l.index], l.cfg.Astronaut, astronaut.Deps{
		Pads:      l.pads,
		Frames:    l.astroFrames,
		Audio:     l.deps.Audio,
		Announcer: l.deps.HUD,
		Rand:      l.deps.Rand,
	})
	if err != nil {
		l.log.Error().Err(err).Int("trip", l.index).Msg("cannot spawn astronaut")
		return
	}
	l.astronaut = a
	l.taxi.EndDropoffGrace()
	l.log.Debug().Int("trip", l.index).Stringer("from", a.Source()).Stringer("to", a.Target()).Msg("astronaut spawned")
}

// Update advances the level by one tick.
func (l *Level) Update(dt time.Duration, c input.Controls) Outcome {
	if l.outcome != None {
		return l.outcome
	}
	l.deps.HUD.Update(dt)

	if c.Action && l.taxi.IsDestroyed() {
		l.taxi.Reset()
		l.retry()
		c.Action = false
	}

	if a := l.astronaut; a != nil {
		a.Update(dt)
		l.deps.HUD.SetTripMoney(a.Fare())
		if l.updatePassenger(a) {
			return l.outcome
		}
	} else if l.index < len(l.trips) {
		l.spawnClock += dt
		if l.spawnClock >= l.cfg.Level.TimeBetweenAstronauts {
			l.spawn()
		}
	}

	// Running dry wrecks the taxi inside Update; it costs a life like any crash.
	wasDestroyed := l.taxi.IsDestroyed()
	l.taxi.Update(dt, c)
	if !wasDestroyed && l.taxi.IsDestroyed() {
		l.crashed()
	}
	l.collide()

	if l.lives <= 0 {
		l.outcome = GameOver
		l.log.Info().Int("bank", l.deps.HUD.Bank()).Msg("game over")
	}
	return l.outcome
}

// updatePassenger applies the trip rules. It reports true when the level is over.
func (l *Level) updatePassenger(a *astronaut.Astronaut) bool {
	if a.IsOnboard() {
		if l.taxi.Passenger() != a {
			l.taxi.BoardAstronaut(a)
			l.log.Debug().Stringer("to", a.Target()).Msg("boarded")
		}
		if a.Target() == scenery.Up {
			if l.gate.IsClosed() {
				l.gate.Open()
			} else if l.taxi.HasExited() {
				l.taxi.UnboardAstronaut()
				l.deps.Metrics.Delivered(l.number)
				l.outcome = Completed
				l.log.Info().Int("bank", l.deps.HUD.Bank()).Msg("level completed")
				return true
			}
		}
		return false
	}

	if a.HasReachedDestination() {
		if l.index < len(l.trips)-1 {
			l.deps.Metrics.Delivered(l.number)
			l.index++
			l.astronaut = nil
			l.spawnClock = 0
		}
		return false
	}

	switch l.taxi.HitAstronaut(a) {
	case taxi.Strike:
		l.deps.Metrics.Struck(l.number)
		l.retry()
		return false
	case taxi.Clip:
		l.deps.Metrics.Fined(l.number)
	}

	if id, landed := l.taxi.PadLandedOn(); landed {
		if id == a.Source() && a.IsWaitingForTaxi() {
			a.Jump(l.taxi.Rect().Min.X + l.cfg.Taxi.DropOffsetX)
		}
	} else if a.IsJumpingOnStartingPad() {
		a.Wait()
	}
	return false
}

func (l *Level) collide() {
	for _, pad := range l.pads.All() {
		if l.taxi.LandOnPad(pad) {
			continue
		}
		if l.taxi.CrashOnObstacle(pad) {
			l.crashed()
		}
	}
	for _, o := range l.obstacles {
		if l.taxi.CrashOnObstacle(o) {
			l.crashed()
		}
	}
	if l.gate.IsClosed() && l.taxi.CrashOnObstacle(l.gate) {
		l.crashed()
	}
	for _, p := range l.pumps {
		if l.taxi.CrashOnObstacle(p) {
			l.crashed()
		} else if l.taxi.RefuelFrom(p) {
			l.taxi.Refuel()
			l.deps.Metrics.Refuelled(l.number)
		}
	}
}

// crashed charges a crash: the fare aboard is lost and so is a life.
func (l *Level) crashed() {
	if a := l.astronaut; a != nil && a.IsOnboard() {
		a.SetFare(0)
		l.deps.HUD.SetTripMoney(0)
	}
	l.lives--
	l.deps.HUD.SetLives(l.lives)
	l.deps.Metrics.Crashed(l.number)
	l.deps.Metrics.LifeLost(l.number)
	l.log.Info().Int("lives", l.lives).Msg("taxi crashed")
}

// Draw renders the level and its HUD.
func (l *Level) Draw(screen render.Image) {
	render.DrawAt(screen, l.surface, 0, 0)
	for _, o := range l.obstacles {
		o.Draw(screen)
	}
	l.gate.Draw(screen)
	for _, p := range l.pumps {
		p.Draw(screen)
	}
	for _, pad := range l.pads.All() {
		pad.Draw(screen, l.deps.Renderer)
	}
	l.taxi.Draw(screen)
	if l.astronaut != nil {
		l.astronaut.Draw(screen)
	}
	l.deps.HUD.Draw(screen, l.deps.Renderer, l.hudImages)
}

// Number returns the level number.
func (l *Level) Number() int { return l.number }

// Music returns the path of the level's music.
func (l *Level) Music() string { return l.music }

// Lives returns the lives left.
func (l *Level) Lives() int { return l.lives }

// Outcome returns None until the level is completed or lost.
func (l *Level) Outcome() Outcome { return l.outcome }

// Taxi returns the player's taxi.
func (l *Level) Taxi() *taxi.Taxi { return l.taxi }

// Astronaut returns the current passenger, nil between trips.
func (l *Level) Astronaut() *astronaut.Astronaut { return l.astronaut }

// TripIndex returns the position of the current trip in the schedule.
func (l *Level) TripIndex() int { return l.index }

// Gate returns the exit gate.
func (l *Level) Gate() *scenery.Gate { return l.gate }

// Pads returns the level's landing pads.
func (l *Level) Pads() *scenery.Pads { return l.pads }
