// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Viewport fits the whole toroidal world into the window, keeping its aspect
// ratio and centring it on the axis with spare room.
type Viewport struct {
	world  physics.Bounds
	scale  float64
	offset physics.Vector2D
}

// NewViewport creates a viewport for world, fitted to a window of the given size.
func NewViewport(world physics.Bounds, windowWidth, windowHeight float32) *Viewport {
	v := &Viewport{world: world, scale: 1}
	v.Fit(windowWidth, windowHeight)
	return v
}

// Fit recomputes scale and offset for a new window size.
func (v *Viewport) Fit(windowWidth, windowHeight float32) {
	if windowWidth <= 0 || windowHeight <= 0 || v.world.Width <= 0 || v.world.Height <= 0 {
		return
	}
	sx := float64(windowWidth) / v.world.Width
	sy := float64(windowHeight) / v.world.Height
	v.scale = min(sx, sy)
	v.offset = physics.Vector2D{
		X: (float64(windowWidth) - v.world.Width*v.scale) / 2,
		Y: (float64(windowHeight) - v.world.Height*v.scale) / 2,
	}
}

// Scale returns window pixels per world unit.
func (v *Viewport) Scale() float64 {
	return v.scale
}

// WorldToScreen converts world coordinates to window coordinates.
func (v *Viewport) WorldToScreen(worldPos physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(worldPos.X*v.scale + v.offset.X),
		Y: float32(worldPos.Y*v.scale + v.offset.Y),
	}
}

// ScreenToWorld converts window coordinates back to world coordinates.
func (v *Viewport) ScreenToWorld(p engo.Point) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(p.X) - v.offset.X) / v.scale,
		Y: (float64(p.Y) - v.offset.Y) / v.scale,
	}
}

// Length converts a world distance to pixels.
func (v *Viewport) Length(d float64) float32 {
	return float32(d * v.scale)
}
