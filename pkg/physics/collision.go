// pkg/physics/collision.go
package physics

import "sort"

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides reports whether two circles overlap. Circles that only touch
// do not collide.
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// DetectOverlaps returns, for every collider i, the ascending indices of
// every other collider it overlaps. The relation is symmetric and is
// rebuilt from scratch on each call.
func DetectOverlaps(colliders []Circle) [][]int {
	overlaps := make([][]int, len(colliders))
	for i := range colliders {
		for j := i + 1; j < len(colliders); j++ {
			if colliders[i].Collides(colliders[j]) {
				overlaps[i] = append(overlaps[i], j)
				overlaps[j] = append(overlaps[j], i)
			}
		}
	}
	return overlaps
}

// DetectOverlapsBroadPhase returns the same overlap sets as DetectOverlaps
// but prunes candidate pairs with a QuadTree built over this frame's
// colliders.
func DetectOverlapsBroadPhase(colliders []Circle, capacity int) [][]int {
	overlaps := make([][]int, len(colliders))
	if len(colliders) == 0 {
		return overlaps
	}

	tree := NewQuadTree(boundingRect(colliders), capacity)
	maxRadius := 0.0
	for i, c := range colliders {
		tree.Insert(c.Center, i)
		if c.Radius > maxRadius {
			maxRadius = c.Radius
		}
	}

	for i, c := range colliders {
		// Anything that can overlap c has its center within c.Radius+maxRadius.
		reach := 2*(c.Radius+maxRadius) + queryPadding
		for _, j := range tree.Query(Rect{Center: c.Center, Width: reach, Height: reach}) {
			if j != i && c.Collides(colliders[j]) {
				overlaps[i] = append(overlaps[i], j)
			}
		}
		sort.Ints(overlaps[i])
	}
	return overlaps
}

// queryPadding widens rectangles so that float rounding on their edges never
// drops a candidate; the exact circle test runs afterwards anyway.
const queryPadding = 2.0

func boundingRect(colliders []Circle) Rect {
	minX, minY := colliders[0].Center.X, colliders[0].Center.Y
	maxX, maxY := minX, minY
	for _, c := range colliders[1:] {
		minX = min(minX, c.Center.X)
		minY = min(minY, c.Center.Y)
		maxX = max(maxX, c.Center.X)
		maxY = max(maxY, c.Center.Y)
	}
	return Rect{
		Center: Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Width:  maxX - minX + queryPadding,
		Height: maxY - minY + queryPadding,
	}
}

// QuadTree for spatial partitioning. Each stored point carries the index of
// the collider it belongs to.
type QuadTree struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	Indices   []int
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree
}

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies in the rectangle. The low edges are
// inclusive and the high edges exclusive.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Indices:  make([]int, 0, capacity),
	}
}

// Insert adds a point to the tree. It returns false if the point lies
// outside the tree's boundary.
func (qt *QuadTree) Insert(point Vector2D, index int) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.Points) < qt.Capacity && !qt.Divided {
		qt.Points = append(qt.Points, point)
		qt.Indices = append(qt.Indices, index)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	if qt.NorthWest.Insert(point, index) ||
		qt.NorthEast.Insert(point, index) ||
		qt.SouthWest.Insert(point, index) ||
		qt.SouthEast.Insert(point, index) {
		return true
	}

	// Rounding on quadrant edges can leave a point inside this node but
	// outside every child; keep it here so it is never lost.
	qt.Points = append(qt.Points, point)
	qt.Indices = append(qt.Indices, index)
	return true
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	qt.NorthWest = NewQuadTree(Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.NorthEast = NewQuadTree(Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.SouthWest = NewQuadTree(Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.SouthEast = NewQuadTree(Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.Divided = true
}

// Query returns the indices of all points inside area
func (qt *QuadTree) Query(area Rect) []int {
	return qt.query(area, nil)
}

func (qt *QuadTree) query(area Rect, found []int) []int {
	if !qt.intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Indices[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.query(area, found)
	found = qt.NorthEast.query(area, found)
	found = qt.SouthWest.query(area, found)
	return qt.SouthEast.query(area, found)
}

func (qt *QuadTree) intersects(area Rect) bool {
	return !(area.Center.X-area.Width/2 > qt.Boundary.Center.X+qt.Boundary.Width/2 ||
		area.Center.X+area.Width/2 < qt.Boundary.Center.X-qt.Boundary.Width/2 ||
		area.Center.Y-area.Height/2 > qt.Boundary.Center.Y+qt.Boundary.Height/2 ||
		area.Center.Y+area.Height/2 < qt.Boundary.Center.Y-qt.Boundary.Height/2)
}
