// pkg/engine/game.go
package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// GameStatus is the lifecycle state of the frame loop
type GameStatus int

const (
	// StatusUninitialized means no tick has been seen yet.
	StatusUninitialized GameStatus = iota
	// StatusRunning means the previous tick's timestamp is known.
	StatusRunning
)

// String returns the lower-case name of the status.
func (s GameStatus) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusRunning:
		return "running"
	default:
		return "unknown"
	}
}

// quadTreeCapacity is the leaf capacity used by the broad phase.
const quadTreeCapacity = 8

// maxSpawnAttempts bounds the search for a seeding position clear of the ship.
const maxSpawnAttempts = 64

// Game owns the entity list and advances it one frame at a time. It is not
// safe for concurrent use; hosts call every method from one goroutine.
type Game struct {
	Config      *config.GameConfig
	Status      GameStatus
	CurrentTick uint64
	LastUpdate  time.Time
	EventBus    *event.Bus

	tuning     entity.Tuning
	maxStep    float64
	broadPhase bool

	entities []*entity.Entity
	ship     *entity.Entity
	controls entity.Controls
	ids      entity.IDSource
	rng      *rand.Rand

	logger *logging.Logger
	ctx    context.Context
}

// Option customizes a Game at construction.
type Option func(*Game)

// WithRand sets the random source used for seeding and splits.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithEventBus publishes game events on bus instead of a private one.
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) { g.EventBus = bus }
}

// WithContext sets the context carried into log calls, typically one
// holding a session ID.
func WithContext(ctx context.Context) Option {
	return func(g *Game) { g.ctx = ctx }
}

// NewGame creates a new game with the ship at the centre of the world and
// the configured number of asteroids seeded around it.
func NewGame(cfg *config.GameConfig, opts ...Option) *Game {
	game := &Game{
		Config:     cfg,
		tuning:     cfg.Tuning(),
		maxStep:    cfg.Loop.MaxTimeStep,
		broadPhase: cfg.Loop.BroadPhase,
		ctx:        context.Background(),
	}

	for _, opt := range opts {
		opt(game)
	}

	if game.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		game.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if game.logger == nil {
		game.logger = logging.Discard()
	}
	if game.EventBus == nil {
		game.EventBus = event.NewEventBus()
	}

	game.initShip()
	game.initAsteroids()

	return game
}

// initShip places the ship at rest in the middle of the world.
func (g *Game) initShip() {
	center := physics.Vector2D{X: g.tuning.Bounds.Width / 2, Y: g.tuning.Bounds.Height / 2}
	g.ship = entity.NewShip(g.ids.Next(), center, g.tuning.ShipRadius)
	g.entities = append(g.entities, g.ship)
}

// initAsteroids seeds full-size asteroids at random positions away from the ship.
func (g *Game) initAsteroids() {
	for i := 0; i < g.Config.Asteroids.InitialCount; i++ {
		pos := g.findSpawnPoint()
		vel := entity.RandomVelocity(g.rng, g.tuning.AsteroidMinSpeed, g.tuning.AsteroidMaxSpeed)
		g.entities = append(g.entities, entity.NewAsteroid(g.ids.Next(), pos, vel, g.tuning.MaxAsteroidRadius))
	}
}

// findSpawnPoint returns a random position at least the spawn clearance
// away from the ship. Worlds too small for that get the last candidate.
func (g *Game) findSpawnPoint() physics.Vector2D {
	clearance := g.Config.Asteroids.SpawnClearance
	var pos physics.Vector2D
	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		pos = physics.Vector2D{
			X: g.rng.Float64() * g.tuning.Bounds.Width,
			Y: g.rng.Float64() * g.tuning.Bounds.Height,
		}
		if pos.Distance(g.ship.Position) >= clearance {
			break
		}
	}
	return pos
}

// SetControls replaces the player's input levels. They are read once at the
// start of the next step.
func (g *Game) SetControls(controls entity.Controls) {
	g.controls = controls
}

// Controls returns the input levels the next step will read.
func (g *Game) Controls() entity.Controls {
	return g.controls
}

// Tick advances the simulation to now and returns the resulting snapshot.
// The first call only records the timestamp. Later calls step by the time
// elapsed since the previous call, clamped to the configured maximum;
// non-positive deltas leave the state untouched.
func (g *Game) Tick(now time.Time) *GameState {
	if g.Status == StatusUninitialized {
		g.start(now)
		return g.GetGameState()
	}

	dt := now.Sub(g.LastUpdate).Seconds()
	g.LastUpdate = now
	if dt > 0 {
		g.Step(dt)
	}
	return g.GetGameState()
}

// start moves the game into the running state.
func (g *Game) start(now time.Time) {
	g.Status = StatusRunning
	g.LastUpdate = now
	g.logger.Info(g.ctx, "game started",
		"entities", len(g.entities),
		"broad_phase", g.broadPhase,
		"world_width", g.tuning.Bounds.Width,
		"world_height", g.tuning.Bounds.Height)
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Step advances the simulation by dt seconds. dt is clamped to the
// configured maximum; non-positive values are ignored.
func (g *Game) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > g.maxStep {
		dt = g.maxStep
	}
	started := time.Now()

	g.ship.Ship.Controls = g.controls

	spawned := g.updateEntities(dt)

	// Bullets fired this frame are integrated before the collision pass too.
	for _, b := range spawned {
		b.Move(dt, g.tuning.Bounds)
	}

	candidates := make([]*entity.Entity, 0, len(g.entities)+len(spawned))
	candidates = append(candidates, g.entities...)
	candidates = append(candidates, spawned...)

	overlaps := g.detectOverlaps(candidates)
	frame := event.NewFrameEvent(g, g.CurrentTick+1, started, dt)
	frame.Spawned = len(spawned)

	g.entities = g.resolve(candidates, overlaps, frame)
	g.CurrentTick++

	g.summarize(frame, started)
	g.EventBus.Publish(frame)
}

// updateEntities runs every entity's behavior and returns the spawn requests.
func (g *Game) updateEntities(dt float64) []*entity.Entity {
	var spawned []*entity.Entity
	for _, e := range g.entities {
		spawned = e.Update(dt, g.tuning, &g.ids, spawned)
	}

	for _, b := range spawned {
		g.logger.Debug(g.ctx, "bullet fired", "id", uint64(b.ID), "x", b.Position.X, "y", b.Position.Y)
		g.EventBus.Publish(event.NewEntityEvent(event.BulletFired, g, uint64(b.ID), b.Kind.String(), b.Position, b.Radius))
	}
	return spawned
}

// detectOverlaps returns the overlap set of every candidate by index.
func (g *Game) detectOverlaps(candidates []*entity.Entity) [][]int {
	colliders := make([]physics.Circle, len(candidates))
	for i, e := range candidates {
		colliders[i] = e.GetCollider()
	}

	if g.broadPhase {
		return physics.DetectOverlapsBroadPhase(colliders, quadTreeCapacity)
	}
	return physics.DetectOverlaps(colliders)
}

// resolve applies each candidate's resolution rule against the same
// snapshot and returns the next entity list.
func (g *Game) resolve(candidates []*entity.Entity, overlaps [][]int, frame *event.FrameEvent) []*entity.Entity {
	rctx := &entity.ResolveContext{
		Tuning: g.tuning,
		Rand:   g.rng,
		IDs:    &g.ids,
	}

	next := make([]*entity.Entity, 0, len(candidates))
	var hits []*entity.Entity
	for i, e := range candidates {
		hits = hits[:0]
		for _, j := range overlaps[i] {
			hits = append(hits, candidates[j])
			if i < j {
				frame.Overlaps++
				g.EventBus.Publish(event.NewCollisionEvent(g, uint64(e.ID), uint64(candidates[j].ID)))
			}
		}

		before := len(next)
		var outcome entity.Outcome
		next, outcome = entity.Resolve(rctx, e, hits, next)
		g.publishOutcome(e, outcome, next[before:])
		if outcome != entity.Survived {
			frame.Removed++
		}
	}
	return next
}

// publishOutcome reports destroyed and split entities.
func (g *Game) publishOutcome(e *entity.Entity, outcome entity.Outcome, children []*entity.Entity) {
	switch outcome {
	case entity.Destroyed:
		eventType := event.AsteroidDestroyed
		if e.Kind == entity.KindBullet {
			eventType = event.BulletDestroyed
		}
		g.EventBus.Publish(event.NewEntityEvent(eventType, g, uint64(e.ID), e.Kind.String(), e.Position, e.Radius))

	case entity.Split:
		ev := event.NewEntityEvent(event.AsteroidSplit, g, uint64(e.ID), e.Kind.String(), e.Position, e.Radius)
		for _, child := range children {
			ev.Children = append(ev.Children, uint64(child.ID))
		}
		g.logger.Debug(g.ctx, "asteroid split", "id", uint64(e.ID), "radius", e.Radius, "children", len(children))
		g.EventBus.Publish(ev)
	}
}

// summarize fills the per-kind counts of the frame event.
func (g *Game) summarize(frame *event.FrameEvent, started time.Time) {
	frame.Entities = len(g.entities)
	for _, e := range g.entities {
		switch e.Kind {
		case entity.KindAsteroid:
			frame.Asteroids++
		case entity.KindBullet:
			frame.Bullets++
		}
	}
	frame.Elapsed = time.Since(started)
}

// Ship returns the player's ship.
func (g *Game) Ship() *entity.Entity {
	return g.ship
}

// GetGameState returns a snapshot of the current game state
func (g *Game) GetGameState() *GameState {
	state := &GameState{
		Tick:     g.CurrentTick,
		Status:   g.Status,
		Entities: make([]EntityState, len(g.entities)),
	}
	for i, e := range g.entities {
		state.Entities[i] = EntityState{
			ID:          e.ID,
			Kind:        e.Kind,
			Position:    e.Position,
			Velocity:    e.Velocity,
			Radius:      e.Radius,
			Orientation: e.Orientation(),
		}
	}
	return state
}

// GameState represents a snapshot of the game state, in entity list order
type GameState struct {
	Tick     uint64
	Status   GameStatus
	Entities []EntityState
}

// EntityState represents a snapshot of one entity
type EntityState struct {
	ID          entity.ID
	Kind        entity.Kind
	Position    physics.Vector2D
	Velocity    physics.Vector2D
	Radius      float64
	Orientation float64
}

// Count returns how many entities of kind the snapshot holds.
func (s *GameState) Count(kind entity.Kind) int {
	n := 0
	for _, e := range s.Entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
