// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"sync/atomic"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
)

// hudZIndex keeps the status text above every sprite.
const hudZIndex = 100

// HUDSystem shows a one-line status in the top-left corner: frame, live
// asteroids and bullets, and how many asteroids have been split or destroyed.
type HUDSystem struct {
	splits    atomic.Uint64
	destroyed atomic.Uint64
	subs      []*event.Subscription

	status string

	font *common.Font
	text *sprite
}

// NewHUDSystem creates a HUD counting split and destroyed asteroids on bus.
func NewHUDSystem(bus *event.Bus) *HUDSystem {
	hud := &HUDSystem{}
	if bus != nil {
		hud.subs = append(hud.subs,
			bus.Subscribe(event.AsteroidSplit, func(event.Event) { hud.splits.Add(1) }),
			bus.Subscribe(event.AsteroidDestroyed, func(event.Event) { hud.destroyed.Add(1) }),
		)
	}
	return hud
}

// AttachText makes the HUD draw its status through system using font.
// Without it the HUD only tracks state.
func (hud *HUDSystem) AttachText(system spriteSystem, font *common.Font) {
	hud.font = font
	hud.text = &sprite{
		BasicEntity: ecs.NewBasic(),
		SpaceComponent: common.SpaceComponent{
			Position: engo.Point{X: 8, Y: 8},
		},
	}
	hud.text.SetZIndex(hudZIndex)
	system.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update redraws the status text if it changed.
func (hud *HUDSystem) Update(dt float32) {
	if hud.text == nil || hud.font == nil {
		return
	}
	if t, ok := hud.text.Drawable.(common.Text); ok && t.Text == hud.status {
		return
	}
	hud.text.Drawable = common.Text{Font: hud.font, Text: hud.status}
}

// UpdateGameState refreshes the status line from a snapshot.
func (hud *HUDSystem) UpdateGameState(state *engine.GameState) {
	hud.status = fmt.Sprintf("frame %d  asteroids %d  bullets %d  split %d  destroyed %d",
		state.Tick,
		state.Count(entity.KindAsteroid),
		state.Count(entity.KindBullet),
		hud.splits.Load(),
		hud.destroyed.Load(),
	)
}

// Status returns the current status line.
func (hud *HUDSystem) Status() string {
	return hud.status
}

// Close cancels the HUD's event subscriptions.
func (hud *HUDSystem) Close() {
	for _, sub := range hud.subs {
		sub.Cancel()
	}
	hud.subs = nil
}
