// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Controls is the level (held or not) of each player input, sampled once
// per frame.
type Controls struct {
	ThrustUp   bool
	ThrustDown bool
	Left       bool
	Right      bool
	Firing     bool
}

// ShipState is the ship-only part of an Entity.
type ShipState struct {
	// Orientation in radians; 0 faces +X and positive turns clockwise on screen.
	Orientation    float64
	Controls       Controls
	WeaponCooldown float64 // seconds until the next shot is allowed
}

// NewShip creates the player's ship at rest, facing +X.
func NewShip(id ID, position physics.Vector2D, radius float64) *Entity {
	return &Entity{
		ID:       id,
		Kind:     KindShip,
		Position: position,
		Radius:   radius,
		Ship:     &ShipState{},
	}
}

// updateShip applies thrust, rotation, decay, the speed cap and the weapon
// cooldown, in that order. It returns the bullet fired this frame, if any.
// Integration is left to the caller.
func (e *Entity) updateShip(dt float64, tuning Tuning, ids *IDSource) *Entity {
	s := e.Ship

	// Thrust both ways may be held at once; the impulses cancel.
	heading := physics.FromAngle(s.Orientation, tuning.Thrust*dt)
	if s.Controls.ThrustUp {
		e.Velocity = e.Velocity.Add(heading)
	}
	if s.Controls.ThrustDown {
		e.Velocity = e.Velocity.Sub(heading)
	}

	if s.Controls.Left {
		s.Orientation -= tuning.TurnRate * dt
	}
	if s.Controls.Right {
		s.Orientation += tuning.TurnRate * dt
	}

	e.Velocity = e.Velocity.Sub(e.Velocity.Scale(tuning.SpeedDecay * dt))
	e.Velocity = e.Velocity.ClampLength(tuning.TopSpeed)

	return e.fireWeapon(dt, tuning, ids)
}
