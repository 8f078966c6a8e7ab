package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

var (
	styleAsteroid = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleBullet   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleShip     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleNose     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

const (
	runeAsteroid = 'o'
	runeBullet   = '*'
	runeHull     = '+'
	runeNose     = '@'
)

type cell struct {
	r     rune
	style tcell.Style
}

// TerminalRenderer draws the whole world scaled onto a tcell screen. The
// bottom row is reserved for a status line.
type TerminalRenderer struct {
	screen tcell.Screen
	world  physics.Bounds
	width  int
	height int
	buffer [][]cell

	// StatusLine is drawn on the bottom row at Present.
	StatusLine string
}

// NewTerminalRenderer creates a renderer for an initialized screen.
func NewTerminalRenderer(screen tcell.Screen, world physics.Bounds) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		world:  world,
	}
	r.resize()
	return r
}

// resize matches the buffer to the current screen size.
func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	h-- // status line
	if h < 1 {
		h = 1
	}
	if w == r.width && h == r.height && r.buffer != nil {
		return
	}
	r.width, r.height = w, h
	r.buffer = make([][]cell, h)
	for i := range r.buffer {
		r.buffer[i] = make([]cell, w)
	}
}

// worldToScreen converts world coordinates to a cell.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	x := int(math.Floor(pos.X / r.world.Width * float64(r.width)))
	y := int(math.Floor(pos.Y / r.world.Height * float64(r.height)))
	return x, y
}

// cellSize returns the world extent of one cell on each axis.
func (r *TerminalRenderer) cellSize() (float64, float64) {
	return r.world.Width / float64(r.width), r.world.Height / float64(r.height)
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, ch rune, style tcell.Style) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = cell{r: ch, style: style}
	}
}

// line plots the segment a-b at roughly one sample per cell.
func (r *TerminalRenderer) line(a, b physics.Vector2D, ch rune, style tcell.Style) {
	cw, chh := r.cellSize()
	d := b.Sub(a)
	steps := int(math.Ceil(math.Max(math.Abs(d.X)/cw, math.Abs(d.Y)/chh)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		r.plot(a.Add(d.Scale(float64(i)/float64(steps))), ch, style)
	}
}

// circle plots the outline of a circle, or a single cell when it is smaller
// than one.
func (r *TerminalRenderer) circle(center physics.Vector2D, radius float64, ch rune, style tcell.Style) {
	cw, chh := r.cellSize()
	step := math.Min(cw, chh)
	n := int(math.Ceil(2 * math.Pi * radius / step))
	if n < 8 {
		r.plot(center, ch, style)
		if radius < step {
			return
		}
		n = 8
	}
	for i := 0; i < n; i++ {
		r.plot(center.Add(physics.FromAngle(2*math.Pi*float64(i)/float64(n), radius)), ch, style)
	}
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	r.resize()
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' ', style: tcell.StyleDefault}
		}
	}
}

// RenderShip implements Renderer
func (r *TerminalRenderer) RenderShip(ship engine.EntityState) {
	wedge := ShipWedge(ship)
	for i := range wedge {
		r.line(wedge[i], wedge[(i+1)%len(wedge)], runeHull, styleShip)
	}
	r.plot(wedge[0], runeNose, styleNose)
}

// RenderAsteroid implements Renderer
func (r *TerminalRenderer) RenderAsteroid(asteroid engine.EntityState) {
	r.circle(asteroid.Position, asteroid.Radius, runeAsteroid, styleAsteroid)
}

// RenderBullet implements Renderer
func (r *TerminalRenderer) RenderBullet(bullet engine.EntityState) {
	r.plot(bullet.Position, runeBullet, styleBullet)
}

// Present implements Renderer
func (r *TerminalRenderer) Present() {
	for y, row := range r.buffer {
		for x, c := range row {
			r.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}

	status := []rune(r.StatusLine)
	for x := 0; x < r.width; x++ {
		ch := ' '
		if x < len(status) {
			ch = status[x]
		}
		r.screen.SetContent(x, r.height, ch, nil, styleStatus)
	}

	r.screen.Show()
}
