package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/spacetaxi/internal/assets"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Play(assets.SndCrash)
	r.Play(assets.SndCrash)
	r.Play(assets.SndSmoothLanding)
	r.Loop(assets.SndReactor, 0)
	r.SetVolume(assets.SndReactor, 0.25)

	assert.Equal(t, 2, r.Count(assets.SndCrash))
	assert.Equal(t, []Cue{assets.SndCrash, assets.SndCrash, assets.SndSmoothLanding}, r.Played())
	assert.True(t, r.Looping(assets.SndReactor))
	assert.InDelta(t, 0.25, r.Volume(assets.SndReactor), 1e-9)

	r.Stop(assets.SndReactor)
	assert.False(t, r.Looping(assets.SndReactor))

	r.Reset()
	assert.Empty(t, r.Played())
}
