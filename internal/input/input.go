// Package input turns keyboard and gamepad state into per-tick controls.
package input

import "chosenoffset.com/spacetaxi/internal/render"

// Gamepad layout: thrust follows the right stick, gear follows button 1.
const (
	AxisRightX   = 3
	AxisRightY   = 4
	ActionButton = 1

	stickThreshold = 0.5
)

// Controls is a snapshot of the player's intents for one tick.
type Controls struct {
	Left, Right bool // rear thruster, facing left or right
	Up          bool // bottom thruster, climbs
	Down        bool // top thruster, descends
	Action      bool // edge-triggered: toggles the gear, or retries after a crash
}

// Idle reports whether no thrust direction is held.
func (c Controls) Idle() bool {
	return !c.Left && !c.Right && !c.Up && !c.Down
}

// Read samples the input manager.
func Read(in render.InputManager) Controls {
	x := in.GamepadAxis(AxisRightX)
	y := in.GamepadAxis(AxisRightY)
	return Controls{
		Left:   in.IsKeyPressed(render.KeyLeft) || x < -stickThreshold,
		Right:  in.IsKeyPressed(render.KeyRight) || x > stickThreshold,
		Up:     in.IsKeyPressed(render.KeyUp) || y < -stickThreshold,
		Down:   in.IsKeyPressed(render.KeyDown) || y > stickThreshold,
		Action: in.IsKeyJustPressed(render.KeySpace) || in.IsGamepadButtonJustPressed(ActionButton),
	}
}

// Confirm reports an edge on Enter, Space or the action button, used to leave
// the splash and loading screens.
func Confirm(in render.InputManager) bool {
	return in.IsKeyJustPressed(render.KeyEnter) ||
		in.IsKeyJustPressed(render.KeySpace) ||
		in.IsGamepadButtonJustPressed(ActionButton)
}

// Quit reports an edge on Escape.
func Quit(in render.InputManager) bool {
	return in.IsKeyJustPressed(render.KeyEscape)
}
