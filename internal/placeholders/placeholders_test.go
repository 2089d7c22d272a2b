package placeholders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/core/collision"
)

func TestTaxiSheet(t *testing.T) {
	img := TaxiSheet()
	assert.Equal(t, TaxiFrameWidth*TaxiFrames, img.Bounds().Dx())
	assert.Equal(t, TaxiFrameHeight, img.Bounds().Dy())

	// The flame frames are transparent outside their region.
	m := collision.MaskFromImage(img, collision.DefaultThreshold)
	assert.True(t, m.Get(TaxiFrameWidth+TaxiBottomFlame.Min.X, TaxiBottomFlame.Min.Y))
	assert.False(t, m.Get(TaxiFrameWidth+TaxiBody.Min.X, TaxiBody.Min.Y))
}

func TestPadMargins(t *testing.T) {
	span, ok := collision.OpaqueSpan(Pad(1), 0)
	require.True(t, ok)
	assert.Equal(t, collision.Span{Left: PadMargin, Right: PadWidth - PadMargin}, span)
}

func TestSampleLevel(t *testing.T) {
	data, err := SampleLevel(assets.DefaultCatalog())
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, "[level]")
	assert.Contains(t, s, "[[pads]]")
	assert.Contains(t, s, "img/pad5.png")
	assert.NotContains(t, s, "astronauts")
}

func TestGenerateAndSave(t *testing.T) {
	root := t.TempDir()
	catalog := assets.DefaultCatalog()

	written, err := GenerateAndSave(root, catalog)
	require.NoError(t, err)
	assert.Len(t, written, len(Images(catalog))+len(Sounds(catalog))+1)

	for id, rel := range catalog {
		_, err := os.Stat(filepath.Join(root, rel))
		assert.NoError(t, err, "catalogue entry %s", id)
	}
	_, err = os.Stat(filepath.Join(root, "levels", "level1.toml"))
	assert.NoError(t, err)

	f, err := os.Open(filepath.Join(root, catalog[assets.SndSmoothLanding]))
	require.NoError(t, err)
	defer f.Close()
	s, format, err := wav.Decode(f)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, SampleRate, format.SampleRate)
	assert.Equal(t, SampleRate.N(120e6), s.Len())
}
