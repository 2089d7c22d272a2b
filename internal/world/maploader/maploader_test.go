package maploader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/world/scenery"
)

const sampleScenery = `
[level]
surface = "img/level1.png"
music = "snd/level1.wav"

[gate]
image = "img/gate.png"
x = 582
y = 0

[[obstacles]]
image = "img/rock.png"
x = 10
y = 20

[[pumps]]
image = "img/pump.png"
x = 300
y = 400

[[pads]]
image = "img/pad1.png"
x = 100
y = 500

[[pads]]
image = "img/pad2.png"
x = 600
y = 300
startX = 610
endX = 760
`

const sampleLevel = sampleScenery + `
[[astronauts]]
source = 1
target = 2

[[astronauts]]
source = 2
target = "up"
`

func writeLevel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level1.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeLevel(t, sampleLevel)

	lvl, err := Load(path, 20)
	require.NoError(t, err)

	assert.Equal(t, "img/level1.png", lvl.Surface)
	assert.Equal(t, "snd/level1.wav", lvl.Music)
	assert.Equal(t, Placement{Image: "img/gate.png", X: 582, Y: 0}, lvl.Gate)
	assert.Equal(t, []Placement{{Image: "img/rock.png", X: 10, Y: 20}}, lvl.Obstacles)
	assert.Equal(t, []Placement{{Image: "img/pump.png", X: 300, Y: 400}}, lvl.Pumps)

	require.Len(t, lvl.Pads, 2)
	assert.Equal(t, 1, lvl.Pads[0].ID)
	assert.Equal(t, 2, lvl.Pads[1].ID)
	assert.False(t, lvl.Pads[0].Spec().HasAnchors)

	spec := lvl.Pads[1].Spec()
	assert.True(t, spec.HasAnchors)
	assert.Equal(t, 610, spec.StartX)
	assert.Equal(t, 760, spec.EndX)
	assert.Equal(t, scenery.PadID(2), spec.ID)
}

func TestLoad_DefaultSchedule(t *testing.T) {
	body := sampleScenery
	for i := 3; i <= 5; i++ {
		body += "\n[[pads]]\nimage = \"img/pad.png\"\nx = 0\ny = 0\n"
	}
	lvl, err := Load(writeLevel(t, body), 20)
	require.NoError(t, err)

	assert.Equal(t, DefaultSchedule(2000), lvl.Trips)
	last := lvl.Trips[len(lvl.Trips)-1]
	assert.Equal(t, scenery.Up, last.Target)
}

func TestLoad_Astronauts(t *testing.T) {
	body := sampleScenery + `
[[astronauts]]
source = 1
target = 2

[[astronauts]]
source = 2
target = "UP"
fare = 12.5
`
	lvl, err := Load(writeLevel(t, body), 20)
	require.NoError(t, err)

	assert.Equal(t, []Trip{
		{Source: 1, Target: 2, Fare: 2000},
		{Source: 2, Target: scenery.Up, Fare: 1250},
	}, lvl.Trips)
}

func TestLoad_LevelFare(t *testing.T) {
	body := `
[level]
surface = "a.png"
fare = 7.25

[gate]
image = "g.png"

[[pads]]
image = "p.png"

[[pads]]
image = "p.png"

[[astronauts]]
source = 1
target = "up"
`
	lvl, err := Load(writeLevel(t, body), 20)
	require.NoError(t, err)
	assert.Equal(t, 725, lvl.Trips[0].Fare)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "level9.toml"), 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, assets.ErrMissing))

	name, ok := assets.MissingFile(err)
	assert.True(t, ok)
	assert.Equal(t, "level9.toml", name)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "[level\nsurface = "},
		{"no surface", `
[gate]
image = "g.png"
[[pads]]
image = "p.png"
`},
		{"no gate", `
[level]
surface = "s.png"
[[pads]]
image = "p.png"
`},
		{"no pads", `
[level]
surface = "s.png"
[gate]
image = "g.png"
`},
		{"duplicate pad", `
[level]
surface = "s.png"
[gate]
image = "g.png"
[[pads]]
id = 1
image = "p.png"
[[pads]]
id = 1
image = "p.png"
`},
		{"inverted anchors", `
[level]
surface = "s.png"
[gate]
image = "g.png"
[[pads]]
image = "p.png"
startX = 50
endX = 10
`},
		{"unknown source", `
[level]
surface = "s.png"
[gate]
image = "g.png"
[[pads]]
image = "p.png"
[[astronauts]]
source = 3
target = "up"
`},
		{"bad target", `
[level]
surface = "s.png"
[gate]
image = "g.png"
[[pads]]
image = "p.png"
[[astronauts]]
source = 1
target = "sideways"
`},
		{"same pad", `
[level]
surface = "s.png"
[gate]
image = "g.png"
[[pads]]
image = "p.png"
[[astronauts]]
source = 1
target = 1
`},
		{"last trip stays on a pad", sampleScenery + `
[[astronauts]]
source = 1
target = "up"
[[astronauts]]
source = 1
target = 2
`},
		{"only trip stays on a pad", sampleScenery + `
[[astronauts]]
source = 1
target = 2
`},
		{"early exit", sampleScenery + `
[[astronauts]]
source = 1
target = "up"
[[astronauts]]
source = 2
target = "up"
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeLevel(t, tt.body), 20)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLevel), err.Error())

			var ie *InvalidLevelError
			require.True(t, errors.As(err, &ie))
			assert.NotEmpty(t, ie.Reason)
		})
	}
}

func TestCents(t *testing.T) {
	assert.Equal(t, 2000, Cents(20))
	assert.Equal(t, 1999, Cents(19.99))
	assert.Equal(t, 0, Cents(0))
}
