// pkg/render/renderer.go
package render

import (
	"context"
	"math"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Renderer draws one frame from a snapshot. Implementations receive copies
// and cannot affect the simulation.
type Renderer interface {
	Clear()
	RenderShip(ship engine.EntityState)
	RenderAsteroid(asteroid engine.EntityState)
	RenderBullet(bullet engine.EntityState)
	Present()
}

// Draw renders a full frame, dispatching each entity by kind in list order.
func Draw(r Renderer, state *engine.GameState) {
	r.Clear()
	for _, e := range state.Entities {
		switch e.Kind {
		case entity.KindShip:
			r.RenderShip(e)
		case entity.KindAsteroid:
			r.RenderAsteroid(e)
		case entity.KindBullet:
			r.RenderBullet(e)
		}
	}
	r.Present()
}

// ShipWedge returns the ship's outline: vertices at 0°, 120° and 240° from
// its heading, each one radius from the centre. The first vertex is the nose.
func ShipWedge(ship engine.EntityState) [3]physics.Vector2D {
	var wedge [3]physics.Vector2D
	for i := range wedge {
		angle := ship.Orientation + float64(i)*2*math.Pi/3
		wedge[i] = ship.Position.Add(physics.FromAngle(angle, ship.Radius))
	}
	return wedge
}

// NullRenderer is a Renderer that only logs and counts what it is asked to draw.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context

	Frames    uint64
	Ships     int // drawn in the last presented frame
	Asteroids int
	Bullets   int

	ships, asteroids, bullets int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.ships, d.asteroids, d.bullets = 0, 0, 0
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.Frames++
	d.Ships, d.Asteroids, d.Bullets = d.ships, d.asteroids, d.bullets
	d.logger.Debug(d.ctx, "frame presented",
		"frame", d.Frames,
		"ships", d.Ships,
		"asteroids", d.Asteroids,
		"bullets", d.Bullets,
	)
}

// RenderShip implements Renderer.
func (d *NullRenderer) RenderShip(ship engine.EntityState) {
	d.ships++
	d.logger.Debug(d.ctx, "RenderShip called",
		"ship_id", uint64(ship.ID),
		"x", ship.Position.X,
		"y", ship.Position.Y,
		"orientation", ship.Orientation,
	)
}

// RenderAsteroid implements Renderer.
func (d *NullRenderer) RenderAsteroid(asteroid engine.EntityState) {
	d.asteroids++
	d.logger.Debug(d.ctx, "RenderAsteroid called",
		"asteroid_id", uint64(asteroid.ID),
		"radius", asteroid.Radius,
	)
}

// RenderBullet implements Renderer.
func (d *NullRenderer) RenderBullet(bullet engine.EntityState) {
	d.bullets++
	d.logger.Debug(d.ctx, "RenderBullet called",
		"bullet_id", uint64(bullet.ID),
	)
}
