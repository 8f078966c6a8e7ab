// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
)

// asteroidBorder is the outline width of an asteroid in pixels.
const asteroidBorder = 2

// spriteSystem is the part of common.RenderSystem the renderer uses.
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	kind entity.Kind
	seen bool
}

// EngoRenderer implements render.Renderer by keeping one ECS sprite per
// simulation entity. Sprites are created on first sight and removed at
// Present when their entity is no longer in the frame.
type EngoRenderer struct {
	system   spriteSystem
	viewport *Viewport
	palette  Palette

	sprites map[entity.ID]*sprite
}

// NewEngoRenderer creates a renderer that feeds system.
func NewEngoRenderer(system spriteSystem, viewport *Viewport, palette Palette) *EngoRenderer {
	return &EngoRenderer{
		system:   system,
		viewport: viewport,
		palette:  palette,
		sprites:  make(map[entity.ID]*sprite),
	}
}

// Clear implements render.Renderer.
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// RenderShip implements render.Renderer
func (r *EngoRenderer) RenderShip(ship engine.EntityState) {
	s := r.getOrCreate(ship, r.palette.Ship)
	s.Drawable = shipDrawable(ship)
	r.place(s, ship)
}

// RenderAsteroid implements render.Renderer
func (r *EngoRenderer) RenderAsteroid(asteroid engine.EntityState) {
	s := r.getOrCreate(asteroid, color.Transparent)
	s.Drawable = asteroidDrawable(r.palette, asteroidBorder)
	r.place(s, asteroid)
}

// RenderBullet implements render.Renderer
func (r *EngoRenderer) RenderBullet(bullet engine.EntityState) {
	s := r.getOrCreate(bullet, r.palette.Bullet)
	s.Drawable = bulletDrawable()
	r.place(s, bullet)
}

// Present implements render.Renderer. Drawing itself happens when engo
// updates the render system.
func (r *EngoRenderer) Present() {
	r.removeUnseen()
}

// Len returns the number of live sprites.
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

func (r *EngoRenderer) getOrCreate(e engine.EntityState, c color.Color) *sprite {
	if s, ok := r.sprites[e.ID]; ok {
		s.seen = true
		return s
	}

	s := &sprite{
		BasicEntity:     ecs.NewBasic(),
		RenderComponent: common.RenderComponent{Color: c},
		kind:            e.Kind,
		seen:            true,
	}
	r.sprites[e.ID] = s
	r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// place sets the sprite's bounding square from the entity's circle.
func (r *EngoRenderer) place(s *sprite, e engine.EntityState) {
	topLeft := e.Position
	topLeft.X -= e.Radius
	topLeft.Y -= e.Radius

	side := r.viewport.Length(2 * e.Radius)
	s.Position = r.viewport.WorldToScreen(topLeft)
	s.Width = side
	s.Height = side
}

// removeUnseen drops sprites whose entities were not rendered this frame.
func (r *EngoRenderer) removeUnseen() {
	for id, s := range r.sprites {
		if !s.seen {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}
