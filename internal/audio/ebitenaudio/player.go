// Package ebitenaudio plays audio cues through Ebiten's audio package.
package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/rs/zerolog"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/audio"
)

// SampleRate is the rate every clip is resampled to.
const SampleRate = 44100

// Player decodes clips once and plays them on demand.
type Player struct {
	ctx     *eaudio.Context
	catalog assets.Catalog
	log     zerolog.Logger

	clips    map[audio.Cue][]byte
	loops    map[audio.Cue]*eaudio.Player
	oneShots []*eaudio.Player
}

// New returns a player reading files named by catalog.
func New(ctx *eaudio.Context, catalog assets.Catalog, log zerolog.Logger) *Player {
	return &Player{
		ctx:     ctx,
		catalog: catalog,
		log:     log.With().Str("component", "audio").Logger(),
		clips:   make(map[audio.Cue][]byte),
		loops:   make(map[audio.Cue]*eaudio.Player),
	}
}

// Preload decodes the given cues. A missing file is an assets.MissingError.
func (p *Player) Preload(cues ...audio.Cue) error {
	for _, cue := range cues {
		if _, ok := p.clips[cue]; ok {
			continue
		}
		path, err := p.catalog.Path(cue)
		if err != nil {
			return err
		}
		if err := p.Register(cue, path); err != nil {
			return err
		}
	}
	return nil
}

// Register decodes path and binds it to cue, replacing any earlier binding.
func (p *Player) Register(cue audio.Cue, path string) error {
	pcm, err := p.decode(path)
	if err != nil {
		return err
	}
	if old, ok := p.loops[cue]; ok {
		_ = old.Close()
		delete(p.loops, cue)
	}
	p.clips[cue] = pcm
	p.log.Debug().Str("cue", string(cue)).Str("path", path).Int("bytes", len(pcm)).Msg("clip registered")
	return nil
}

func (p *Player) decode(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, assets.Missing(path, err)
	}

	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return pcm, nil
}

func (p *Player) clip(cue audio.Cue) ([]byte, bool) {
	pcm, ok := p.clips[cue]
	if !ok {
		p.log.Warn().Str("cue", string(cue)).Msg("cue not loaded")
	}
	return pcm, ok
}

// Play starts a one-shot playback.
func (p *Player) Play(cue audio.Cue) {
	pcm, ok := p.clip(cue)
	if !ok {
		return
	}

	// Drop finished players so they can be collected.
	live := p.oneShots[:0]
	for _, s := range p.oneShots {
		if s.IsPlaying() {
			live = append(live, s)
		} else {
			_ = s.Close()
		}
	}
	p.oneShots = live

	s := p.ctx.NewPlayerFromBytes(pcm)
	s.Play()
	p.oneShots = append(p.oneShots, s)
}

// Loop starts cue as an endless loop. Looping an already looping cue only
// changes its volume.
func (p *Player) Loop(cue audio.Cue, volume float64) {
	if l, ok := p.loops[cue]; ok {
		l.SetVolume(volume)
		if !l.IsPlaying() {
			l.Play()
		}
		return
	}

	pcm, ok := p.clip(cue)
	if !ok {
		return
	}
	l, err := p.ctx.NewPlayer(eaudio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm))))
	if err != nil {
		p.log.Error().Err(err).Str("cue", string(cue)).Msg("failed to start loop")
		return
	}
	l.SetVolume(volume)
	l.Play()
	p.loops[cue] = l
}

// SetVolume changes the volume of a looping cue.
func (p *Player) SetVolume(cue audio.Cue, volume float64) {
	if l, ok := p.loops[cue]; ok {
		l.SetVolume(volume)
	}
}

// Stop halts and releases a looping cue.
func (p *Player) Stop(cue audio.Cue) {
	if l, ok := p.loops[cue]; ok {
		_ = l.Close()
		delete(p.loops, cue)
	}
}

var _ audio.Sink = (*Player)(nil)
