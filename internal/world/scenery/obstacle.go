package scenery

import (
	"image"

	"chosenoffset.com/spacetaxi/internal/core/collision"
	"chosenoffset.com/spacetaxi/internal/render"
	"chosenoffset.com/spacetaxi/internal/sprite"
)

// Obstacle is lethal scenery.
type Obstacle struct {
	*sprite.Static
}

// NewObstacle places an obstacle.
func NewObstacle(frame sprite.Frame, pos image.Point) *Obstacle {
	return &Obstacle{Static: sprite.NewStatic(frame, pos)}
}

// Pump refuels a taxi landed next to it. Flying into it is a crash.
type Pump struct {
	*sprite.Static
}

// NewPump places a pump.
func NewPump(frame sprite.Frame, pos image.Point) *Pump {
	return &Pump{Static: sprite.NewStatic(frame, pos)}
}

// Gate closes the exit until an astronaut asks to go up.
type Gate struct {
	static *sprite.Static
	closed bool
}

// NewGate places a closed gate.
func NewGate(frame sprite.Frame, pos image.Point) *Gate {
	return &Gate{static: sprite.NewStatic(frame, pos), closed: true}
}

func (g *Gate) Rect() image.Rectangle { return g.static.Rect() }

func (g *Gate) Mask() *collision.Mask { return g.static.Mask() }

// Open lets the taxi through.
func (g *Gate) Open() { g.closed = false }

func (g *Gate) Close() { g.closed = true }

// IsClosed reports whether the gate blocks the exit.
func (g *Gate) IsClosed() bool { return g.closed }

// Draw draws the gate while it is closed.
func (g *Gate) Draw(screen render.Image) {
	if g.closed {
		g.static.Draw(screen)
	}
}

var (
	_ sprite.Actor = (*Obstacle)(nil)
	_ sprite.Actor = (*Pump)(nil)
	_ sprite.Actor = (*Gate)(nil)
)
