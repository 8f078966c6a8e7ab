package engo

import (
	"math"
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func TestViewport_Fit(t *testing.T) {
	world := physics.Bounds{Width: 800, Height: 600}

	testCases := []struct {
		name          string
		width, height float32
		scale         float64
		origin        engo.Point
	}{
		{"ExactFit", 800, 600, 1, engo.Point{X: 0, Y: 0}},
		{"DoubleSize", 1600, 1200, 2, engo.Point{X: 0, Y: 0}},
		{"WideWindow", 1000, 600, 1, engo.Point{X: 100, Y: 0}},
		{"TallWindow", 400, 600, 0.5, engo.Point{X: 0, Y: 150}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewViewport(world, tc.width, tc.height)
			if math.Abs(v.Scale()-tc.scale) > 1e-9 {
				t.Errorf("Scale() = %v, expected %v", v.Scale(), tc.scale)
			}
			if got := v.WorldToScreen(physics.Vector2D{}); got != tc.origin {
				t.Errorf("WorldToScreen(origin) = %v, expected %v", got, tc.origin)
			}
		})
	}
}

func TestViewport_FitIgnoresEmptyWindow(t *testing.T) {
	v := NewViewport(physics.Bounds{Width: 800, Height: 600}, 0, 0)
	if v.Scale() != 1 {
		t.Errorf("Scale() = %v, expected 1 for an empty window", v.Scale())
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	v := NewViewport(physics.Bounds{Width: 800, Height: 600}, 1000, 600)

	points := []physics.Vector2D{
		{X: 0, Y: 0},
		{X: 400, Y: 300},
		{X: 799.5, Y: 12.25},
	}
	for _, p := range points {
		back := v.ScreenToWorld(v.WorldToScreen(p))
		if back.Distance(p) > 1e-3 {
			t.Errorf("ScreenToWorld(WorldToScreen(%v)) = %v", p, back)
		}
	}
}

func TestViewport_Length(t *testing.T) {
	v := NewViewport(physics.Bounds{Width: 800, Height: 600}, 400, 300)
	if got := v.Length(40); got != 20 {
		t.Errorf("Length(40) = %v, expected 20", got)
	}
}
