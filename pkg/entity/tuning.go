package entity

import "github.com/opd-ai/go-asteroids/pkg/physics"

// Tuning is the immutable set of constants the behaviors and resolution
// rules read. It is built once from the game configuration.
type Tuning struct {
	Bounds physics.Bounds

	ShipRadius   float64
	Thrust       float64 // units/s²
	TopSpeed     float64 // units/s
	SpeedDecay   float64 // fraction of velocity lost per second
	TurnRate     float64 // radians/s
	FireInterval float64 // seconds between shots

	BulletRadius      float64
	BulletSpeed       float64 // added to the ship's velocity
	BulletSpawnOffset float64 // gap between ship hull and a new bullet

	MinAsteroidRadius float64
	MaxAsteroidRadius float64
	AsteroidMinSpeed  float64
	AsteroidMaxSpeed  float64
}
