// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b Vector2D) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		result   Vector2D
		expected Vector2D
	}{
		{"add", Vector2D{X: 3, Y: 4}.Add(Vector2D{X: 1, Y: 2}), Vector2D{X: 4, Y: 6}},
		{"add_mixed_signs", Vector2D{X: 5, Y: -3}.Add(Vector2D{X: -2, Y: 7}), Vector2D{X: 3, Y: 4}},
		{"sub", Vector2D{X: 3, Y: 4}.Sub(Vector2D{X: 1, Y: 2}), Vector2D{X: 2, Y: 2}},
		{"scale", Vector2D{X: 3, Y: -4}.Scale(2), Vector2D{X: 6, Y: -8}},
		{"scale_zero", Vector2D{X: 3, Y: -4}.Scale(0), Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.result, tt.expected) {
				t.Errorf("got %v, expected %v", tt.result, tt.expected)
			}
		})
	}
}

func TestVector2D_Length(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		expected float64
	}{
		{"pythagorean_triple", Vector2D{X: 3, Y: 4}, 5},
		{"zero", Vector2D{}, 0},
		{"negative_components", Vector2D{X: -6, Y: -8}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Length(); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("Length() = %v, expected %v", got, tt.expected)
			}
			if got := tt.v.LengthSquared(); math.Abs(got-tt.expected*tt.expected) > epsilon {
				t.Errorf("LengthSquared() = %v, expected %v", got, tt.expected*tt.expected)
			}
		})
	}
}

func TestVector2D_Normalize(t *testing.T) {
	t.Run("non_zero", func(t *testing.T) {
		result := Vector2D{X: 3, Y: 4}.Normalize()
		if !almostEqual(result, Vector2D{X: 0.6, Y: 0.8}) {
			t.Errorf("Normalize() = %v, expected (0.6, 0.8)", result)
		}
	})

	t.Run("zero_vector_stays_zero", func(t *testing.T) {
		result := Vector2D{}.Normalize()
		if result != (Vector2D{}) {
			t.Errorf("Normalize() on zero vector = %v, expected zero", result)
		}
		if math.IsNaN(result.X) || math.IsNaN(result.Y) {
			t.Error("Normalize() on zero vector produced NaN")
		}
	})
}

func TestVector2D_ClampLength(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		max      float64
		expected Vector2D
	}{
		{"under_limit", Vector2D{X: 3, Y: 4}, 10, Vector2D{X: 3, Y: 4}},
		{"at_limit", Vector2D{X: 3, Y: 4}, 5, Vector2D{X: 3, Y: 4}},
		{"over_limit", Vector2D{X: 30, Y: 40}, 5, Vector2D{X: 3, Y: 4}},
		{"zero_vector", Vector2D{}, 5, Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.ClampLength(tt.max); !almostEqual(got, tt.expected) {
				t.Errorf("ClampLength(%v) = %v, expected %v", tt.max, got, tt.expected)
			}
		})
	}
}

func TestVector2D_Distance(t *testing.T) {
	if got := (Vector2D{X: 1, Y: 1}).Distance(Vector2D{X: 4, Y: 5}); math.Abs(got-5) > epsilon {
		t.Errorf("Distance() = %v, expected 5", got)
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		magnitude float64
		expected  Vector2D
	}{
		{"facing_right", 0, 2, Vector2D{X: 2, Y: 0}},
		{"facing_down", math.Pi / 2, 1, Vector2D{X: 0, Y: 1}},
		{"facing_left", math.Pi, 3, Vector2D{X: -3, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromAngle(tt.angle, tt.magnitude); !almostEqual(got, tt.expected) {
				t.Errorf("FromAngle(%v, %v) = %v, expected %v", tt.angle, tt.magnitude, got, tt.expected)
			}
		})
	}
}

func TestVector2D_Rotate(t *testing.T) {
	got := Vector2D{X: 1, Y: 0}.Rotate(math.Pi / 2)
	if !almostEqual(got, Vector2D{X: 0, Y: 1}) {
		t.Errorf("Rotate(pi/2) = %v, expected (0, 1)", got)
	}
}

func BenchmarkVector2D_Normalize(b *testing.B) {
	v := Vector2D{X: 3, Y: 4}
	for i := 0; i < b.N; i++ {
		v.Normalize()
	}
}
