// Package assets maps logical asset names to files and loads them through a
// render.ResourceLoader, caching decoded pictures by path.
package assets

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ID names an asset independently of where it lives on disk.
type ID string

// Images.
const (
	ImgTaxis          ID = "img_taxis"
	ImgAstronaut      ID = "img_astronaut"
	ImgGate           ID = "img_gate"
	ImgPump           ID = "img_pump"
	ImgLives          ID = "img_lives"
	ImgFuelGaugeFull  ID = "img_fuel_gauge_full"
	ImgFuelGaugeEmpty ID = "img_fuel_gauge_empty"
	ImgSplash         ID = "img_splash"
	ImgLoading        ID = "img_loading"
	ImgGameOver       ID = "img_game_over"
)

// Sounds and music.
const (
	SndReactor       ID = "snd_reactor"
	SndCrash         ID = "snd_crash"
	SndSmoothLanding ID = "snd_smooth_landing"
	SndRoughLanding  ID = "snd_rough_landing"
	SndSplash        ID = "snd_splash"
	SndLoading       ID = "snd_loading"
	VoiceHey         ID = "voice_hey"
)

// HeyTaxiVoices is the number of recorded hails.
const HeyTaxiVoices = 3

// MaxPadVoice is the highest pad number with a recorded announcement.
const MaxPadVoice = 5

// VoiceHeyTaxi names the i-th hail recording (0-based).
func VoiceHeyTaxi(i int) ID {
	return ID(fmt.Sprintf("voice_hey_taxi_%d", i+1))
}

// VoicePadPlease names the destination announcement for pad n; 0 is "up please".
func VoicePadPlease(n int) ID {
	if n == 0 {
		return "voice_up_please"
	}
	return ID(fmt.Sprintf("voice_pad_%d_please", n))
}

// Catalog maps IDs to file paths.
type Catalog map[ID]string

// DefaultCatalog returns the stock file layout.
func DefaultCatalog() Catalog {
	c := Catalog{
		ImgTaxis:          "img/taxis.png",
		ImgAstronaut:      "img/astronaut.png",
		ImgGate:           "img/gate.png",
		ImgPump:           "img/pump.png",
		ImgLives:          "img/hud_lives.png",
		ImgFuelGaugeFull:  "img/fuel_gauge_full.png",
		ImgFuelGaugeEmpty: "img/fuel_gauge_empty.png",
		ImgSplash:         "img/splash.png",
		ImgLoading:        "img/loading.png",
		ImgGameOver:       "img/game_over.png",

		SndReactor:       "snd/reactor.wav",
		SndCrash:         "snd/crash.wav",
		SndSmoothLanding: "snd/smooth_landing.wav",
		SndRoughLanding:  "snd/rough_landing.wav",
		SndSplash:        "snd/splash_theme.wav",
		SndLoading:       "snd/loading.wav",
		VoiceHey:         "voices/hey.wav",
	}
	for i := 0; i < HeyTaxiVoices; i++ {
		c[VoiceHeyTaxi(i)] = fmt.Sprintf("voices/hey_taxi_%02d.wav", i+1)
	}
	c[VoicePadPlease(0)] = "voices/up_please.wav"
	for n := 1; n <= MaxPadVoice; n++ {
		c[VoicePadPlease(n)] = fmt.Sprintf("voices/pad_%d_please.wav", n)
	}
	return c
}

// Merge overrides entries with the non-empty values of other. Keys are
// matched case-insensitively since config keys arrive lower-cased.
func (c Catalog) Merge(other map[string]string) {
	for k, v := range other {
		if v != "" {
			c[ID(strings.ToLower(k))] = v
		}
	}
}

// Path returns the file for id.
func (c Catalog) Path(id ID) (string, error) {
	p, ok := c[id]
	if !ok {
		return "", &MissingError{Path: string(id), Err: fmt.Errorf("no file registered for %q", id)}
	}
	return p, nil
}

// Rooted returns a copy of the catalogue with relative paths joined to root.
func (c Catalog) Rooted(root string) Catalog {
	out := make(Catalog, len(c))
	for id, p := range c {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		out[id] = p
	}
	return out
}
