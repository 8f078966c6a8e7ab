// pkg/render/engo/input.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/entity"
)

// Button names registered with engo.Input.
const (
	ButtonThrust  = "thrust"
	ButtonReverse = "reverse"
	ButtonLeft    = "turnLeft"
	ButtonRight   = "turnRight"
	ButtonFire    = "fire"
	ButtonQuit    = "quit"
)

// InputSystem samples the keyboard once per engo frame. Unlike a terminal,
// engo reports real key-up events, so held keys map directly to levels.
type InputSystem struct {
	down     func(button string) bool
	controls entity.Controls
	quit     bool
}

// NewInputSystem creates an input system reading engo.Input.
func NewInputSystem() *InputSystem {
	return &InputSystem{
		down: func(button string) bool {
			return engo.Input.Button(button).Down()
		},
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples every bound button.
func (is *InputSystem) Update(dt float32) {
	is.controls = entity.Controls{
		ThrustUp:   is.down(ButtonThrust),
		ThrustDown: is.down(ButtonReverse),
		Left:       is.down(ButtonLeft),
		Right:      is.down(ButtonRight),
		Firing:     is.down(ButtonFire),
	}
	if is.down(ButtonQuit) {
		is.quit = true
	}
}

// Controls implements engine.ControlSource with the last sampled state.
func (is *InputSystem) Controls(time.Time) entity.Controls {
	return is.controls
}

// QuitRequested reports whether the quit button has been pressed.
func (is *InputSystem) QuitRequested() bool {
	return is.quit
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonThrust, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonReverse, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonFire, engo.KeySpace)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape, engo.KeyQ)
}
