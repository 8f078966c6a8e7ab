// pkg/entity/weapon_test.go
package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func TestSpawnBullet_Geometry(t *testing.T) {
	tuning := testTuning()

	tests := []struct {
		name        string
		orientation float64
		velocity    physics.Vector2D
		wantPos     physics.Vector2D
		wantVel     physics.Vector2D
	}{
		{
			name:        "facing_right_at_rest",
			orientation: 0,
			wantPos:     physics.Vector2D{X: 400 + 20 + 3 + 2, Y: 300},
			wantVel:     physics.Vector2D{X: 400, Y: 0},
		},
		{
			name:        "facing_down_while_moving",
			orientation: math.Pi / 2,
			velocity:    physics.Vector2D{X: 50, Y: 10},
			wantPos:     physics.Vector2D{X: 400, Y: 300 + 25},
			wantVel:     physics.Vector2D{X: 50, Y: 410},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := NewShip(1, physics.Vector2D{X: 400, Y: 300}, 20)
			ship.Ship.Orientation = tt.orientation
			ship.Velocity = tt.velocity

			bullet := SpawnBullet(9, ship, tuning)

			if bullet.ID != 9 || bullet.Kind != KindBullet {
				t.Errorf("bullet = %+v, want id 9 kind bullet", bullet)
			}
			if bullet.Radius != tuning.BulletRadius {
				t.Errorf("Radius = %v, want %v", bullet.Radius, tuning.BulletRadius)
			}
			if !vecAlmostEqual(bullet.Position, tt.wantPos) {
				t.Errorf("Position = %v, want %v", bullet.Position, tt.wantPos)
			}
			if !vecAlmostEqual(bullet.Velocity, tt.wantVel) {
				t.Errorf("Velocity = %v, want %v", bullet.Velocity, tt.wantVel)
			}
		})
	}
}

func TestSpawnBullet_ClearOfShip(t *testing.T) {
	tuning := testTuning()
	ship := NewShip(1, physics.Vector2D{X: 400, Y: 300}, 20)
	ship.Ship.Orientation = 2.1

	bullet := SpawnBullet(2, ship, tuning)
	if ship.GetCollider().Collides(bullet.GetCollider()) {
		t.Error("a freshly spawned bullet overlaps its ship")
	}
}

func TestFireWeapon_UsesIDSource(t *testing.T) {
	tuning := testTuning()
	ids := IDSource{}
	ids.Next() // the ship's own id

	ship := NewShip(1, physics.Vector2D{X: 400, Y: 300}, 20)
	ship.Ship.Controls.Firing = true

	bullet := ship.fireWeapon(0.01, tuning, &ids)
	if bullet == nil {
		t.Fatal("fireWeapon() returned nil with trigger held and no cooldown")
	}
	if bullet.ID != 2 {
		t.Errorf("bullet ID = %v, want 2", bullet.ID)
	}
}
