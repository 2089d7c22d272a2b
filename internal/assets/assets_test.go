package assets_test

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/placeholders"
	"chosenoffset.com/spacetaxi/internal/render/headless"
)

func TestDefaultCatalog(t *testing.T) {
	c := assets.DefaultCatalog()

	assert.Equal(t, "img/taxis.png", c[assets.ImgTaxis])
	assert.Equal(t, "voices/hey_taxi_02.wav", c[assets.VoiceHeyTaxi(1)])
	assert.Equal(t, "voices/up_please.wav", c[assets.VoicePadPlease(0)])
	assert.Equal(t, "voices/pad_5_please.wav", c[assets.VoicePadPlease(5)])
	assert.Equal(t, assets.ID("voice_pad_3_please"), assets.VoicePadPlease(3))
}

func TestCatalogMerge(t *testing.T) {
	c := assets.DefaultCatalog()
	c.Merge(map[string]string{
		"IMG_TAXIS":     "custom/taxi.png",
		"snd_crash":     "",
		"img_extra_one": "extra.png",
	})

	assert.Equal(t, "custom/taxi.png", c[assets.ImgTaxis])
	assert.Equal(t, "snd/crash.wav", c[assets.SndCrash], "empty values are ignored")
	assert.Equal(t, "extra.png", c["img_extra_one"])
}

func TestCatalogPath(t *testing.T) {
	c := assets.Catalog{}
	_, err := c.Path(assets.ImgGate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, assets.ErrMissing))
}

func TestCatalogRooted(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "abs.png")
	c := assets.Catalog{assets.ImgGate: "img/gate.png", assets.ImgPump: abs}

	r := c.Rooted("/data")
	assert.Equal(t, filepath.Join("/data", "img/gate.png"), r[assets.ImgGate])
	assert.Equal(t, abs, r[assets.ImgPump])
	assert.Equal(t, "img/gate.png", c[assets.ImgGate], "original untouched")
}

func TestProvider(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, placeholders.SavePNG(placeholders.Gate(), filepath.Join(root, "img", "gate.png")))

	p := assets.NewProvider(assets.DefaultCatalog(), headless.NewLoader()).WithRoot(root)

	pic, err := p.Image(assets.ImgGate)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 116, 12), pic.Pixels.Bounds())
	w, h := pic.Image.Size()
	assert.Equal(t, 116, w)
	assert.Equal(t, 12, h)

	again, err := p.File("img/gate.png")
	require.NoError(t, err)
	assert.Same(t, pic, again)
}

func TestProvider_Missing(t *testing.T) {
	root := t.TempDir()
	p := assets.NewProvider(assets.DefaultCatalog(), headless.NewLoader()).WithRoot(root)

	_, err := p.Image(assets.ImgTaxis)
	require.Error(t, err)
	assert.True(t, errors.Is(err, assets.ErrMissing))

	name, ok := assets.MissingFile(err)
	require.True(t, ok)
	assert.Equal(t, "taxis.png", name)

	var me *assets.MissingError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, filepath.Join(root, "img/taxis.png"), me.Path)
}

func TestMissingFile_Unrelated(t *testing.T) {
	_, ok := assets.MissingFile(errors.New("boom"))
	assert.False(t, ok)
}
