// Package audio defines the sound cues the game requests and the sink that
// plays them. Simulation code only asks for cues; nothing waits on playback.
package audio

import (
	"sync"

	"chosenoffset.com/spacetaxi/internal/assets"
)

// Cue identifies a sound. Cues share their names with asset IDs.
type Cue = assets.ID

// Sink plays cues.
type Sink interface {
	// Play starts a one-shot playback.
	Play(cue Cue)
	// Loop starts an endless playback at the given volume.
	Loop(cue Cue, volume float64)
	// SetVolume changes the volume of a looping cue (0 to 1).
	SetVolume(cue Cue, volume float64)
	// Stop halts a looping cue.
	Stop(cue Cue)
}

// Nop discards every request.
type Nop struct{}

func (Nop) Play(Cue)               {}
func (Nop) Loop(Cue, float64)      {}
func (Nop) SetVolume(Cue, float64) {}
func (Nop) Stop(Cue)               {}

// Recorder remembers requests, for tests and headless runs.
type Recorder struct {
	mu      sync.Mutex
	played  []Cue
	volumes map[Cue]float64
	looping map[Cue]bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		volumes: make(map[Cue]float64),
		looping: make(map[Cue]bool),
	}
}

func (r *Recorder) Play(cue Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, cue)
}

func (r *Recorder) Loop(cue Cue, volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.looping[cue] = true
	r.volumes[cue] = volume
}

func (r *Recorder) SetVolume(cue Cue, volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volumes[cue] = volume
}

func (r *Recorder) Stop(cue Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.looping, cue)
}

// Count returns how many times cue was played.
func (r *Recorder) Count(cue Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.played {
		if c == cue {
			n++
		}
	}
	return n
}

// Played returns a copy of every one-shot request in order.
func (r *Recorder) Played() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.played...)
}

// Volume returns the last volume set for cue.
func (r *Recorder) Volume(cue Cue) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volumes[cue]
}

// Looping reports whether cue is playing in a loop.
func (r *Recorder) Looping(cue Cue) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.looping[cue]
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = nil
	clear(r.volumes)
	clear(r.looping)
}

var (
	_ Sink = Nop{}
	_ Sink = (*Recorder)(nil)
)
