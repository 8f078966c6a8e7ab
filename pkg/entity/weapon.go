// pkg/entity/weapon.go
package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// fireWeapon ticks the ship's cooldown and, when the trigger is held and the
// cooldown has run out, re-arms it and returns a new bullet.
func (e *Entity) fireWeapon(dt float64, tuning Tuning, ids *IDSource) *Entity {
	s := e.Ship

	// The cooldown keeps counting down while the trigger is released.
	s.WeaponCooldown -= dt
	if !s.Controls.Firing || s.WeaponCooldown > 0 {
		return nil
	}

	s.WeaponCooldown = tuning.FireInterval
	return SpawnBullet(ids.Next(), e, tuning)
}

// SpawnBullet creates a bullet just outside the parent's hull along its
// heading, moving at the parent's velocity plus the bullet speed.
func SpawnBullet(id ID, parent *Entity, tuning Tuning) *Entity {
	heading := parent.Orientation()
	offset := parent.Radius + tuning.BulletRadius + tuning.BulletSpawnOffset

	position := parent.Position.Add(physics.FromAngle(heading, offset))
	velocity := parent.Velocity.Add(physics.FromAngle(heading, tuning.BulletSpeed))

	return NewBullet(id, position, velocity, tuning.BulletRadius)
}
