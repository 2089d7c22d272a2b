// Package clock supplies the monotonic time the game loop measures ticks with.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock. Go's time.Now carries a monotonic reading,
// so differences are immune to wall clock jumps.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Manual is a clock that only moves when told to.
type Manual struct {
	now time.Time
}

// NewManual returns a manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Ticker turns successive clock readings into clamped frame deltas.
type Ticker struct {
	clock Clock
	last  time.Time
	max   time.Duration
}

// NewTicker returns a ticker whose deltas never exceed max.
func NewTicker(c Clock, max time.Duration) *Ticker {
	return &Ticker{clock: c, max: max}
}

// Tick returns the time elapsed since the previous call. The first call
// returns zero.
func (t *Ticker) Tick() time.Duration {
	now := t.clock.Now()
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	dt := now.Sub(t.last)
	t.last = now
	if dt < 0 {
		return 0
	}
	if t.max > 0 && dt > t.max {
		return t.max
	}
	return dt
}

// Reset forgets the previous reading.
func (t *Ticker) Reset() {
	t.last = time.Time{}
}
