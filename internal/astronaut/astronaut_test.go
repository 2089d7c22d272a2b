package astronaut

import (
	"image"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/audio"
	"chosenoffset.com/spacetaxi/internal/placeholders"
	"chosenoffset.com/spacetaxi/internal/render/headless"
	"chosenoffset.com/spacetaxi/internal/simulation"
	"chosenoffset.com/spacetaxi/internal/sprite"
	"chosenoffset.com/spacetaxi/internal/world/scenery"
)

const tick = 10 * time.Millisecond

type announcer struct{ pads []int }

func (a *announcer) AnnouncePad(n int) { a.pads = append(a.pads, n) }

type fixture struct {
	deps     Deps
	recorder *audio.Recorder
	ann      *announcer
	cfg      simulation.AstronautConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loader := headless.NewLoader()
	geom := scenery.PadGeometry{AstronautWidth: placeholders.AstronautWidth, StandOffset: 24}

	var pads []*scenery.Pad
	for _, spec := range []scenery.PadSpec{
		{ID: 1, Pos: image.Pt(100, 500)},
		{ID: 2, Pos: image.Pt(600, 300)},
	} {
		px := placeholders.Pad(int(spec.ID))
		p, err := scenery.NewPad(spec, px, sprite.NewFrame(px, loader), headless.NewRenderer(), geom)
		require.NoError(t, err)
		pads = append(pads, p)
	}
	registry, err := scenery.NewPads(pads...)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	frames, err := NewFrameSet(placeholders.AstronautSheet(), loader, rng)
	require.NoError(t, err)

	f := &fixture{
		recorder: audio.NewRecorder(),
		ann:      &announcer{},
		cfg:      simulation.DefaultConfig().Astronaut,
	}
	f.deps = Deps{Pads: registry, Frames: frames, Audio: f.recorder, Announcer: f.ann, Rand: rng}
	return f
}

func (f *fixture) spawn(t *testing.T, trip Trip) *Astronaut {
	t.Helper()
	a, err := New(trip, f.cfg, f.deps)
	require.NoError(t, err)
	return a
}

// runUntil updates a until cond holds, failing after limit ticks.
func runUntil(t *testing.T, a *Astronaut, limit int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		a.Update(tick)
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not reached after %d ticks, state %s", limit, a.State())
	return 0
}

func TestFrameSet(t *testing.T) {
	f := newFixture(t)
	fs := f.deps.Frames

	w, h := fs.Size()
	assert.Equal(t, placeholders.AstronautWidth, w)
	assert.Equal(t, placeholders.AstronautHeight, h)

	assert.Len(t, fs.Frames(Waiting), 1)
	assert.Len(t, fs.Frames(Waving), 16)
	assert.Len(t, fs.Frames(JumpingLeft), 6)
	assert.Len(t, fs.Frames(JumpingRight), 6)
	assert.Len(t, fs.Frames(Integrating), 10)
	assert.Nil(t, fs.Frames(Onboard))

	full := fs.Frames(Waiting)[0].Mask.Count()
	for _, fr := range fs.Frames(Integrating) {
		assert.Equal(t, full, fr.Mask.Count(), "integration keeps the whole silhouette solid")
	}
	assert.Same(t, fs.Frames(Integrating)[0].Mask, fs.Frames(Disintegrating)[9].Mask)

	right := fs.Frames(JumpingRight)[0].Mask
	left := fs.Frames(JumpingLeft)[0].Mask
	assert.Equal(t, right.FlipH(), left)

	seq := fs.Frames(Waving)
	assert.Same(t, seq[0].Mask, seq[15].Mask)
	assert.Same(t, seq[3].Mask, seq[7].Mask)
}

func TestNew_UnknownPads(t *testing.T) {
	f := newFixture(t)
	_, err := New(Trip{Source: 9, Target: 1}, f.cfg, f.deps)
	assert.Error(t, err)
	_, err = New(Trip{Source: 1, Target: 9}, f.cfg, f.deps)
	assert.Error(t, err)
	_, err = New(Trip{Source: 1, Target: scenery.Up}, f.cfg, f.deps)
	assert.NoError(t, err)
}

func TestFareDecaysToZero(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: 2, Fare: 2000})

	prev := a.Fare()
	for i := 0; i < 2000; i++ {
		a.Update(50 * time.Millisecond)
		require.LessOrEqual(t, a.Fare(), prev)
		prev = a.Fare()
	}
	assert.Equal(t, 0, a.Fare())

	for i := 0; i < 100; i++ {
		a.Update(50 * time.Millisecond)
	}
	assert.Equal(t, 0, a.Fare())
}

func TestFareDecaysWhileOnboard(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: 2, Fare: 100})
	a.state = Onboard
	a.Update(500 * time.Millisecond)
	assert.Equal(t, 90, a.Fare())
}

func TestIntegrateThenWave(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: 2, Fare: 2000})

	assert.Equal(t, Integrating, a.State())
	assert.Equal(t, image.Pt(114, 476), a.Rect().Min)

	n := runUntil(t, a, 200, func() bool { return a.State() != Integrating })
	assert.Equal(t, Waiting, a.State())
	assert.InDelta(t, 100, n, 1, "ten frames of 100ms")
	assert.True(t, a.IsWaitingForTaxi())

	// the first wave comes without delay
	a.Update(tick)
	assert.Equal(t, Waving, a.State())
	played := f.recorder.Played()
	require.Len(t, played, 1)
	assert.Contains(t, []assets.ID{assets.VoiceHeyTaxi(0), assets.VoiceHeyTaxi(1), assets.VoiceHeyTaxi(2)}, played[0])

	runUntil(t, a, 300, func() bool { return a.State() == Waiting })
	assert.GreaterOrEqual(t, a.wavingDelay, f.cfg.WavingDelayMin)
	assert.LessOrEqual(t, a.wavingDelay, f.cfg.WavingDelayMax)
}

func TestDegenerateJump(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: 2})
	x := a.Rect().Min.X

	a.Jump(x)
	assert.Equal(t, JumpingRight, a.State())
	a.Update(tick)
	assert.Equal(t, Disintegrating, a.State())
	assert.Equal(t, x, a.Rect().Min.X)
}

func TestPickUp(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: 2, Fare: 2000})
	runUntil(t, a, 200, a.IsWaitingForTaxi)

	a.Jump(154)
	assert.Equal(t, JumpingRight, a.State())
	assert.True(t, a.IsJumpingOnStartingPad())

	runUntil(t, a, 1000, func() bool { return a.State() == Disintegrating })
	assert.Equal(t, 154, a.Rect().Min.X)

	runUntil(t, a, 200, a.IsOnboard)
	assert.Equal(t, 1, f.recorder.Count(assets.VoicePadPlease(2)))
	assert.Equal(t, []int{2}, f.ann.pads)
	assert.Nil(t, a.Mask())

	screen := headless.NewRenderer().NewImage(1280, 720).(*headless.Image)
	a.Draw(screen)
	assert.Equal(t, 0, screen.Draws)
}

func TestPickUpForTheExit(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: scenery.Up})
	runUntil(t, a, 200, a.IsWaitingForTaxi)
	a.Jump(100)
	assert.Equal(t, JumpingLeft, a.State())
	runUntil(t, a, 2000, a.IsOnboard)
	assert.Equal(t, 1, f.recorder.Count(assets.VoicePadPlease(0)))
	assert.Equal(t, []int{0}, f.ann.pads)
}

func TestDropOff(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: 2})
	a.state = Onboard

	a.Unboard(650, 276)
	assert.Equal(t, Integrating, a.State())
	assert.Equal(t, image.Pt(650, 276), a.Rect().Min)

	runUntil(t, a, 200, func() bool { return a.State() != Integrating })
	assert.Equal(t, JumpingRight, a.State())
	assert.False(t, a.IsJumpingOnStartingPad(), "the drop-off pad is not the source pad")

	runUntil(t, a, 5000, a.HasReachedDestination)
	assert.Equal(t, 770, a.Rect().Min.X)
	assert.Empty(t, f.ann.pads)
}

func TestWaitCancelsJump(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: 2})
	runUntil(t, a, 200, a.IsWaitingForTaxi)
	a.Jump(200)
	for i := 0; i < 50; i++ {
		a.Update(tick)
	}
	x := a.Rect().Min.X
	assert.Greater(t, x, 114)

	a.Wait()
	assert.Equal(t, Waiting, a.State())
	assert.False(t, a.IsJumpingOnStartingPad())
	assert.Equal(t, x, a.Rect().Min.X)
}

func TestPlayHeyAndArrive(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, Trip{Source: 1, Target: 2})
	a.PlayHey()
	assert.Equal(t, 1, f.recorder.Count(assets.VoiceHey))

	a.SetFare(-5)
	assert.Equal(t, 0, a.Fare())

	a.Arrive()
	assert.True(t, a.HasReachedDestination())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "jumping-left", JumpingLeft.String())
	assert.Equal(t, "State(42)", State(42).String())
}
