package headless

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/spacetaxi/internal/render"
)

type countingGame struct {
	updates, draws int
	stopAt         int
}

func (g *countingGame) Update() error {
	g.updates++
	if g.updates == g.stopAt {
		return render.ErrTerminated
	}
	return nil
}

func (g *countingGame) Draw(screen render.Image) { g.draws++ }

func (g *countingGame) Layout(w, h int) (int, int) { return w, h }

func TestEngineStopsOnTermination(t *testing.T) {
	g := &countingGame{stopAt: 3}
	e := &Engine{Ticks: 10}
	require.NoError(t, e.RunGame(g))
	assert.Equal(t, 3, g.updates)
	assert.Equal(t, 2, g.draws)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader().LoadPixels(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestImageFromPixelsKeepsSize(t *testing.T) {
	px := image.NewNRGBA(image.Rect(5, 5, 25, 15))
	img := NewLoader().NewImageFromImage(px)
	w, h := img.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
}

func TestMeasureTextScales(t *testing.T) {
	r := NewRenderer()
	w1, h1 := r.MeasureText("PAD 1", 1)
	w2, h2 := r.MeasureText("PAD 1", 2)
	assert.Equal(t, 2*w1, w2)
	assert.Equal(t, 2*h1, h2)
}

func TestGeoMTranslates(t *testing.T) {
	g := NewGeoM()
	g.Translate(3, 4)
	g.Translate(1, -1)
	assert.Equal(t, &GeoM{TX: 4, TY: 3}, g)

	g.Reset()
	assert.Equal(t, &GeoM{}, g)
}

func TestColorOf(t *testing.T) {
	r := NewRenderer()
	screen := r.NewImage(10, 10)
	r.DrawText(screen, "A", 0, 0, color.White, 1)
	r.DrawText(screen, "A", 0, 0, color.Black, 1)

	c, ok := r.ColorOf("A")
	require.True(t, ok)
	assert.Equal(t, color.Black, c)

	_, ok = r.ColorOf("B")
	assert.False(t, ok)
}
