package placeholders

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/pelletier/go-toml/v2"

	"chosenoffset.com/spacetaxi/internal/assets"
)

// Screen size the sample level is laid out for.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Gauge geometry.
const (
	GaugeWidth  = 200
	GaugeHeight = 16
)

// Sample level layout.
var (
	SamplePads = []image.Point{
		{80, 560}, {540, 420}, {1000, 560}, {140, 250}, {940, 250},
	}
	SampleGate     = image.Pt(582, 0)
	SampleRock     = image.Rect(300, 400, 420, 440)
	SamplePump     = image.Pt(1150, 510)
	SampleSurface  = "img/level1.png"
	SampleMusic    = "snd/level1.wav"
	SampleRockPath = "img/rock.png"
)

// SamplePadPath names the picture of pad n.
func SamplePadPath(n int) string {
	return fmt.Sprintf("img/pad%d.png", n)
}

type placementDoc struct {
	Image string `toml:"image"`
	X     int    `toml:"x"`
	Y     int    `toml:"y"`
}

type padDoc struct {
	ID    int    `toml:"id"`
	Image string `toml:"image"`
	X     int    `toml:"x"`
	Y     int    `toml:"y"`
}

type levelDoc struct {
	Level struct {
		Surface string  `toml:"surface"`
		Music   string  `toml:"music"`
		Fare    float64 `toml:"fare"`
	} `toml:"level"`
	Gate      placementDoc   `toml:"gate"`
	Obstacles []placementDoc `toml:"obstacles"`
	Pumps     []placementDoc `toml:"pumps"`
	Pads      []padDoc       `toml:"pads"`
}

// SampleLevel renders the sample level file. Without an astronauts table
// the classic schedule applies.
func SampleLevel(catalog assets.Catalog) ([]byte, error) {
	var doc levelDoc
	doc.Level.Surface = SampleSurface
	doc.Level.Music = SampleMusic
	doc.Level.Fare = 20
	doc.Gate = placementDoc{Image: catalog[assets.ImgGate], X: SampleGate.X, Y: SampleGate.Y}
	doc.Obstacles = []placementDoc{{Image: SampleRockPath, X: SampleRock.Min.X, Y: SampleRock.Min.Y}}
	doc.Pumps = []placementDoc{{Image: catalog[assets.ImgPump], X: SamplePump.X, Y: SamplePump.Y}}
	for i, p := range SamplePads {
		doc.Pads = append(doc.Pads, padDoc{ID: i + 1, Image: SamplePadPath(i + 1), X: p.X, Y: p.Y})
	}
	return toml.Marshal(doc)
}

// Images returns every placeholder picture keyed by its path under the asset root.
func Images(catalog assets.Catalog) map[string]image.Image {
	imgs := map[string]image.Image{
		catalog[assets.ImgTaxis]:          TaxiSheet(),
		catalog[assets.ImgAstronaut]:      AstronautSheet(),
		catalog[assets.ImgGate]:           Gate(),
		catalog[assets.ImgPump]:           Pump(),
		catalog[assets.ImgLives]:          Block(24, 12, ColorPalette.Lives),
		catalog[assets.ImgFuelGaugeFull]:  Block(GaugeWidth, GaugeHeight, ColorPalette.GaugeFull),
		catalog[assets.ImgFuelGaugeEmpty]: Block(GaugeWidth, GaugeHeight, ColorPalette.GaugeEmpty),
		catalog[assets.ImgSplash]:         Screen(ScreenWidth, ScreenHeight, ColorPalette.TaxiBody),
		catalog[assets.ImgLoading]:        Screen(ScreenWidth, ScreenHeight, ColorPalette.Pad),
		catalog[assets.ImgGameOver]:       Screen(ScreenWidth, ScreenHeight, ColorPalette.Pump),
		SampleSurface:                     Starfield(ScreenWidth, ScreenHeight),
		SampleRockPath:                    Block(SampleRock.Dx(), SampleRock.Dy(), ColorPalette.Obstacle),
	}
	for i := range SamplePads {
		imgs[SamplePadPath(i+1)] = Pad(i + 1)
	}
	return imgs
}

func beeps(n int, freq float64) []Note {
	notes := make([]Note, 0, 2*n)
	for i := 0; i < n; i++ {
		notes = append(notes,
			Note{Freq: freq, Duration: 90 * time.Millisecond, Wave: WaveSquare},
			Note{Duration: 60 * time.Millisecond, Wave: WaveSine})
	}
	return notes
}

// Sounds returns every placeholder sound keyed by its path under the asset root.
func Sounds(catalog assets.Catalog) map[string]beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	snds := map[string]beep.Streamer{
		catalog[assets.SndReactor]:       Tone(0.6, Note{90, ms(1000), WaveSaw}),
		catalog[assets.SndCrash]:         Tone(0.8, Note{0, ms(600), WaveNoise}),
		catalog[assets.SndSmoothLanding]: Tone(0.6, Note{440, ms(120), WaveSine}),
		catalog[assets.SndRoughLanding]:  Tone(0.7, Note{180, ms(250), WaveSquare}),
		catalog[assets.SndSplash]: Tone(0.4,
			Note{262, ms(300), WaveSine}, Note{330, ms(300), WaveSine},
			Note{392, ms(300), WaveSine}, Note{523, ms(600), WaveSine}),
		catalog[assets.SndLoading]: Tone(0.4, Note{392, ms(400), WaveSine}, Note{330, ms(400), WaveSine}),
		catalog[assets.VoiceHey]:   Tone(0.7, Note{600, ms(80), WaveSquare}, Note{400, ms(120), WaveSquare}),
		SampleMusic: Tone(0.3,
			Note{220, ms(400), WaveSine}, Note{262, ms(400), WaveSine},
			Note{330, ms(400), WaveSine}, Note{262, ms(400), WaveSine}),
	}
	for i := 0; i < assets.HeyTaxiVoices; i++ {
		snds[catalog[assets.VoiceHeyTaxi(i)]] = Tone(0.7,
			Note{500 + float64(i)*50, ms(100), WaveSquare}, Note{700 + float64(i)*50, ms(150), WaveSquare})
	}
	snds[catalog[assets.VoicePadPlease(0)]] = Tone(0.7, Note{400, ms(100), WaveSine}, Note{800, ms(200), WaveSine})
	for n := 1; n <= assets.MaxPadVoice; n++ {
		snds[catalog[assets.VoicePadPlease(n)]] = Tone(0.7, beeps(n, 660)...)
	}
	return snds
}

// GenerateAndSave writes the placeholder assets under root following the
// catalogue's layout, plus levels/level1.toml. It returns the written paths.
func GenerateAndSave(root string, catalog assets.Catalog) ([]string, error) {
	var written []string

	for rel, img := range Images(catalog) {
		path := filepath.Join(root, rel)
		if err := SavePNG(img, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", rel, err)
		}
		written = append(written, path)
	}

	for rel, s := range Sounds(catalog) {
		path := filepath.Join(root, rel)
		if err := SaveWAV(s, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", rel, err)
		}
		written = append(written, path)
	}

	level, err := SampleLevel(catalog)
	if err != nil {
		return written, fmt.Errorf("failed to render sample level: %w", err)
	}
	path := filepath.Join(root, "levels", "level1.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return written, err
	}
	if err := os.WriteFile(path, level, 0o644); err != nil {
		return written, fmt.Errorf("failed to save level file: %w", err)
	}
	written = append(written, path)
	return written, nil
}
