// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// IDSource hands out entity IDs. The zero value is ready to use and its
// first ID is 1.
type IDSource struct {
	last ID
}

// Next returns a fresh ID.
func (s *IDSource) Next() ID {
	s.last++
	return s.last
}

// Kind identifies which behavior and resolution rules apply to an entity.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindBullet
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Entity is any simulated body. Shared state lives in the struct itself;
// Ship holds the ship-only payload and is nil for every other kind.
type Entity struct {
	ID       ID
	Kind     Kind
	Position physics.Vector2D
	Velocity physics.Vector2D // units per second
	Radius   float64

	Ship *ShipState
}

// GetID returns the entity's unique identifier
func (e *Entity) GetID() ID {
	return e.ID
}

// GetCollider returns the entity's collision shape
func (e *Entity) GetCollider() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Radius}
}

// Orientation returns the ship heading in radians, or 0 for kinds without one.
func (e *Entity) Orientation() float64 {
	if e.Ship == nil {
		return 0
	}
	return e.Ship.Orientation
}

// Move integrates the position over dt and wraps it around the world.
func (e *Entity) Move(dt float64, bounds physics.Bounds) {
	e.Position = physics.Integrate(e.Position, e.Velocity, dt)
	e.Position = physics.Wrap(e.Position, e.Velocity, e.Radius, bounds)
}

// Update runs the per-kind behavior for one frame and appends any entities
// the behavior wants spawned to spawned.
func (e *Entity) Update(dt float64, tuning Tuning, ids *IDSource, spawned []*Entity) []*Entity {
	if e.Kind == KindShip && e.Ship != nil {
		if bullet := e.updateShip(dt, tuning, ids); bullet != nil {
			spawned = append(spawned, bullet)
		}
	}
	// Asteroids and bullets only drift.
	e.Move(dt, tuning.Bounds)
	return spawned
}

// NewAsteroid creates a free-floating asteroid.
func NewAsteroid(id ID, position, velocity physics.Vector2D, radius float64) *Entity {
	return &Entity{
		ID:       id,
		Kind:     KindAsteroid,
		Position: position,
		Velocity: velocity,
		Radius:   radius,
	}
}

// NewBullet creates a bullet. Bullets have no lifetime; they live until they
// hit something.
func NewBullet(id ID, position, velocity physics.Vector2D, radius float64) *Entity {
	return &Entity{
		ID:       id,
		Kind:     KindBullet,
		Position: position,
		Velocity: velocity,
		Radius:   radius,
	}
}
