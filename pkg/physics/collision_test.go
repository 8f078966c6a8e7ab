// pkg/physics/collision_test.go
package physics

import (
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestCircle_Collides(t *testing.T) {
	tests := []struct {
		name     string
		circle1  Circle
		circle2  Circle
		expected bool
	}{
		{
			name:     "circles_touching",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 10, Y: 0}, Radius: 5},
			expected: false, // Distance equals sum of radii, collision logic uses <
		},
		{
			name:     "circles_overlapping",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 5, Y: 0}, Radius: 5},
			expected: true,
		},
		{
			name:     "circles_not_touching",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 15, Y: 0}, Radius: 5},
			expected: false,
		},
		{
			name:     "circles_same_position",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 3},
			circle2:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 2},
			expected: true,
		},
		{
			name:     "circles_diagonal_collision",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			circle2:  Circle{Center: Vector2D{X: 3, Y: 4}, Radius: 3},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.circle1.Collides(tt.circle2)
			if result != tt.expected {
				t.Errorf("Circle.Collides() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestDetectOverlaps(t *testing.T) {
	colliders := []Circle{
		{Center: Vector2D{X: 0, Y: 0}, Radius: 10},
		{Center: Vector2D{X: 15, Y: 0}, Radius: 10},
		{Center: Vector2D{X: 100, Y: 100}, Radius: 5},
		{Center: Vector2D{X: 5, Y: 5}, Radius: 1},
	}

	got := DetectOverlaps(colliders)
	expected := [][]int{
		{1, 3},
		{0, 3},
		nil,
		{0, 1},
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("DetectOverlaps() = %v, expected %v", got, expected)
	}
}

func TestDetectOverlaps_Empty(t *testing.T) {
	if got := DetectOverlaps(nil); len(got) != 0 {
		t.Errorf("DetectOverlaps(nil) = %v, expected empty", got)
	}
	if got := DetectOverlapsBroadPhase(nil, 4); len(got) != 0 {
		t.Errorf("DetectOverlapsBroadPhase(nil) = %v, expected empty", got)
	}
}

func TestDetectOverlaps_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	colliders := randomColliders(rng, 60)

	overlaps := DetectOverlaps(colliders)
	for i, set := range overlaps {
		for _, j := range set {
			if j == i {
				t.Fatalf("collider %d overlaps itself", i)
			}
			if !containsIndex(overlaps[j], i) {
				t.Errorf("collider %d overlaps %d but not the reverse", i, j)
			}
		}
	}
}

func TestDetectOverlapsBroadPhase_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 20; round++ {
		colliders := randomColliders(rng, 10+round*5)
		expected := DetectOverlaps(colliders)
		got := DetectOverlapsBroadPhase(colliders, 4)

		for i := range colliders {
			if len(expected[i]) == 0 && len(got[i]) == 0 {
				continue
			}
			if !reflect.DeepEqual(got[i], expected[i]) {
				t.Fatalf("round %d collider %d: broad phase = %v, brute force = %v", round, i, got[i], expected[i])
			}
		}
	}
}

func TestDetectOverlapsBroadPhase_CoincidentCenters(t *testing.T) {
	colliders := make([]Circle, 9)
	for i := range colliders {
		colliders[i] = Circle{Center: Vector2D{X: 50, Y: 50}, Radius: 1}
	}

	got := DetectOverlapsBroadPhase(colliders, 2)
	for i, set := range got {
		if len(set) != len(colliders)-1 {
			t.Errorf("collider %d has %d overlaps, expected %d", i, len(set), len(colliders)-1)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	rect := Rect{
		Center: Vector2D{X: 10, Y: 10},
		Width:  20,
		Height: 20,
	}

	tests := []struct {
		name     string
		point    Vector2D
		expected bool
	}{
		{"point_inside_center", Vector2D{X: 10, Y: 10}, true},
		{"point_on_low_edge", Vector2D{X: 0, Y: 10}, true},
		{"point_outside", Vector2D{X: 25, Y: 25}, false},
		{"point_on_high_edge", Vector2D{X: 20, Y: 10}, false}, // < not <=
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rect.Contains(tt.point)
			if result != tt.expected {
				t.Errorf("Rect.Contains(%v) = %v, expected %v", tt.point, result, tt.expected)
			}
		})
	}
}

func TestQuadTree_InsertAndSubdivide(t *testing.T) {
	boundary := Rect{Center: Vector2D{X: 0, Y: 0}, Width: 100, Height: 100}
	qt := NewQuadTree(boundary, 2)

	if !qt.Insert(Vector2D{X: 10, Y: 10}, 0) {
		t.Fatal("Insert should succeed for point within boundary")
	}
	if qt.Insert(Vector2D{X: 100, Y: 100}, 1) {
		t.Error("Insert should fail for point outside boundary")
	}

	qt.Insert(Vector2D{X: -10, Y: -10}, 2)
	qt.Insert(Vector2D{X: 20, Y: -30}, 3)

	if !qt.Divided {
		t.Error("QuadTree should be divided after exceeding capacity")
	}

	expectedNW := Rect{Center: Vector2D{X: -25, Y: -25}, Width: 50, Height: 50}
	if qt.NorthWest.Boundary != expectedNW {
		t.Errorf("NorthWest boundary expected %v, got %v", expectedNW, qt.NorthWest.Boundary)
	}
	expectedSE := Rect{Center: Vector2D{X: 25, Y: 25}, Width: 50, Height: 50}
	if qt.SouthEast.Boundary != expectedSE {
		t.Errorf("SouthEast boundary expected %v, got %v", expectedSE, qt.SouthEast.Boundary)
	}
}

func TestQuadTree_Query(t *testing.T) {
	boundary := Rect{Center: Vector2D{X: 0, Y: 0}, Width: 100, Height: 100}
	qt := NewQuadTree(boundary, 2)

	points := []Vector2D{
		{X: -20, Y: -20},
		{X: 20, Y: 20},
		{X: -20, Y: 20},
		{X: 20, Y: -20},
	}
	for i, point := range points {
		qt.Insert(point, i)
	}

	t.Run("query_all", func(t *testing.T) {
		results := qt.Query(boundary)
		if len(results) != 4 {
			t.Errorf("Expected 4 results, got %d", len(results))
		}
	})

	t.Run("query_one_quadrant", func(t *testing.T) {
		results := qt.Query(Rect{Center: Vector2D{X: 25, Y: 25}, Width: 50, Height: 50})
		if len(results) != 1 || results[0] != 1 {
			t.Errorf("Expected [1], got %v", results)
		}
	})

	t.Run("query_outside_boundary", func(t *testing.T) {
		results := qt.Query(Rect{Center: Vector2D{X: 200, Y: 200}, Width: 50, Height: 50})
		if len(results) != 0 {
			t.Errorf("Expected 0 results, got %d", len(results))
		}
	})
}

func randomColliders(rng *rand.Rand, n int) []Circle {
	colliders := make([]Circle, n)
	for i := range colliders {
		colliders[i] = Circle{
			Center: Vector2D{X: rng.Float64()*400 - 20, Y: rng.Float64()*300 - 20},
			Radius: 2 + rng.Float64()*30,
		}
	}
	return colliders
}

func containsIndex(set []int, index int) bool {
	for _, v := range set {
		if v == index {
			return true
		}
	}
	return false
}

func BenchmarkDetectOverlaps(b *testing.B) {
	colliders := randomColliders(rand.New(rand.NewPCG(3, 4)), 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DetectOverlaps(colliders)
	}
}

func BenchmarkDetectOverlapsBroadPhase(b *testing.B) {
	colliders := randomColliders(rand.New(rand.NewPCG(3, 4)), 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DetectOverlapsBroadPhase(colliders, 8)
	}
}
