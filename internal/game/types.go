package game

import (
	"fmt"
	"time"

	"chosenoffset.com/spacetaxi/internal/audio"
)

// State is the scene the manager is showing.
type State int

const (
	StateSplash State = iota
	StateLoading
	StatePlaying
	StateGameOver
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateSplash:
		return "splash"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game-over"
	case StateFatal:
		return "fatal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MusicCue is the cue the current level's music is registered under.
const MusicCue audio.Cue = "music_level"

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Alpha is the message opacity, fading linearly to zero.
func (m Message) Alpha() uint8 {
	if m.MaxTime <= 0 || m.TimeLeft <= 0 {
		return 0
	}
	if m.TimeLeft >= m.MaxTime {
		return 255
	}
	return uint8(255 * (m.TimeLeft / m.MaxTime))
}

// fade ramps a looping cue's volume down to silence, then stops it.
type fade struct {
	cue    audio.Cue
	total  time.Duration
	left   time.Duration
	active bool
}

func (f *fade) start(cue audio.Cue, d time.Duration) {
	f.cue = cue
	f.total = d
	f.left = d
	f.active = true
}

// update advances the ramp and applies the new volume to sink.
func (f *fade) update(dt time.Duration, sink audio.Sink) {
	if !f.active {
		return
	}
	f.left -= dt
	if f.left <= 0 || f.total <= 0 {
		sink.SetVolume(f.cue, 0)
		sink.Stop(f.cue)
		f.active = false
		return
	}
	sink.SetVolume(f.cue, float64(f.left)/float64(f.total))
}

// cancel forgets a running ramp without touching the cue.
func (f *fade) cancel() {
	f.active = false
}
