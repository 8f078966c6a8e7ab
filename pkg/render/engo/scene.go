// pkg/render/engo/scene.go
package engo

import (
	"context"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/render"
)

const hudFontSize = 16

// GameScene runs the simulation inside engo's frame loop: every engo update
// samples input, advances the game to the current wall-clock time and
// mirrors the snapshot into ECS sprites.
type GameScene struct {
	game   *engine.Game
	logger *logging.Logger
	ctx    context.Context
	now    func() time.Time
	exit   func()

	palette  Palette
	viewport *Viewport
	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem

	// OnFrame, if set, is called with every snapshot after it is drawn.
	OnFrame func(state *engine.GameState)
}

// NewGameScene creates a scene driving game.
func NewGameScene(game *engine.Game, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		game:    game,
		logger:  logger,
		ctx:     context.Background(),
		now:     time.Now,
		exit:    engo.Exit,
		palette: DefaultPalette(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(scene.ctx, "unexpected engo updater", nil)
		return
	}

	common.SetBackground(scene.palette.Background)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.attach(world, renderSystem, engo.GameWidth(), engo.GameHeight())

	font, err := LoadHUDFont(hudFontSize, scene.palette.HUD)
	if err != nil {
		scene.logger.Warn(scene.ctx, "HUD text disabled", "error", err)
	} else {
		scene.hud.AttachText(renderSystem, font)
	}

	scene.logger.Info(scene.ctx, "engo scene ready",
		"window_width", engo.GameWidth(),
		"window_height", engo.GameHeight(),
		"scale", scene.viewport.Scale(),
	)
}

// attach creates the scene's systems on top of an existing sprite system.
func (scene *GameScene) attach(world *ecs.World, sprites spriteSystem, width, height float32) {
	cfg := scene.game.Config
	scene.viewport = NewViewport(cfg.Bounds(), width, height)
	scene.renderer = NewEngoRenderer(sprites, scene.viewport, scene.palette)
	scene.input = NewInputSystem()
	scene.hud = NewHUDSystem(scene.game.EventBus)

	if world != nil {
		world.AddSystem(scene.input)
		world.AddSystem(&frameSystem{scene: scene})
		world.AddSystem(scene.hud)
	}
}

// frame advances and draws one simulation frame. A quit key or a cancelled
// context closes the window instead.
func (scene *GameScene) frame() {
	if scene.input.QuitRequested() || scene.ctx.Err() != nil {
		scene.exit()
		return
	}

	scene.game.SetControls(scene.input.Controls(scene.now()))
	state := scene.game.Tick(scene.now())

	render.Draw(scene.renderer, state)
	scene.hud.UpdateGameState(state)

	if scene.OnFrame != nil {
		scene.OnFrame(state)
	}
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	if scene.hud != nil {
		scene.hud.Close()
	}
	scene.logger.Info(scene.ctx, "engo scene exited", "frames", scene.game.CurrentTick)
}

// frameSystem hooks GameScene.frame into the ECS update order, after input
// and before the HUD and renderer.
type frameSystem struct {
	scene *GameScene
}

func (f *frameSystem) Update(dt float32) { f.scene.frame() }

func (f *frameSystem) Remove(ecs.BasicEntity) {}

// Run opens a window sized to the world and blocks until it is closed by
// the player or ctx is cancelled. It returns ctx.Err() in the latter case.
func Run(ctx context.Context, game *engine.Game, logger *logging.Logger) error {
	cfg := game.Config
	scene := NewGameScene(game, logger)
	scene.ctx = ctx
	engo.Run(engo.RunOptions{
		Title:        "Asteroids",
		Width:        int(cfg.World.Width),
		Height:       int(cfg.World.Height),
		FPSLimit:     cfg.Loop.TargetFPS,
		NotResizable: true,
	}, scene)
	return ctx.Err()
}
