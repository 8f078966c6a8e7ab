package physics

// Bounds is the fixed size of the toroidal world. The origin is the
// top-left corner.
type Bounds struct {
	Width  float64
	Height float64
}

// Integrate advances a position by velocity over dt seconds.
func Integrate(position, velocity Vector2D, dt float64) Vector2D {
	return position.Add(velocity.Scale(dt))
}

// Wrap teleports a circle that has fully left the world to just outside the
// opposite edge. Each axis wraps at most once per call and only while the
// velocity on that axis still points away from the world.
func Wrap(position, velocity Vector2D, radius float64, bounds Bounds) Vector2D {
	position.X = wrapAxis(position.X, velocity.X, radius, bounds.Width)
	position.Y = wrapAxis(position.Y, velocity.Y, radius, bounds.Height)
	return position
}

func wrapAxis(pos, vel, radius, size float64) float64 {
	switch {
	case pos-radius > size && vel > 0:
		return -radius
	case pos+radius < 0 && vel < 0:
		return size + radius
	default:
		return pos
	}
}
