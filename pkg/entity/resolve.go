package entity

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// AsteroidSplitCount is how many fragments a destroyed asteroid breaks into
// when it is large enough to split.
const AsteroidSplitCount = 3

// Outcome reports what a resolution rule did with an entity.
type Outcome int

const (
	Survived Outcome = iota
	Destroyed
	Split
)

// String returns the lower-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Survived:
		return "survived"
	case Destroyed:
		return "destroyed"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// ResolveContext carries what resolution rules need besides the entity and
// its overlap set.
type ResolveContext struct {
	Tuning Tuning
	Rand   *rand.Rand
	IDs    *IDSource
}

// Resolver decides whether e survives a frame given the entities it
// overlaps. Survivors and any children are appended to out.
type Resolver func(ctx *ResolveContext, e *Entity, hits []*Entity, out []*Entity) ([]*Entity, Outcome)

// resolvers holds the kind-specific rules. Kinds without an entry, the ship
// among them, always survive.
var resolvers = map[Kind]Resolver{
	KindAsteroid: resolveAsteroid,
	KindBullet:   resolveBullet,
}

// Resolve applies e's resolution rule.
func Resolve(ctx *ResolveContext, e *Entity, hits []*Entity, out []*Entity) ([]*Entity, Outcome) {
	if rule, ok := resolvers[e.Kind]; ok {
		return rule(ctx, e, hits, out)
	}
	return append(out, e), Survived
}

func resolveBullet(_ *ResolveContext, e *Entity, hits []*Entity, out []*Entity) ([]*Entity, Outcome) {
	if len(hits) > 0 {
		return out, Destroyed
	}
	return append(out, e), Survived
}

func resolveAsteroid(ctx *ResolveContext, e *Entity, hits []*Entity, out []*Entity) ([]*Entity, Outcome) {
	struck := false
	for _, h := range hits {
		if h.Kind != KindAsteroid {
			struck = true
			break
		}
	}
	if !struck {
		return append(out, e), Survived
	}

	children := SplitAsteroid(ctx, e)
	if len(children) == 0 {
		return out, Destroyed
	}
	return append(out, children...), Split
}

// SplitAsteroid returns the fragments of a destroyed asteroid: three
// half-radius children with independent random velocities, each pushed from
// the parent's center along its own heading. Parents whose children would
// not exceed the minimum radius produce none.
func SplitAsteroid(ctx *ResolveContext, parent *Entity) []*Entity {
	childRadius := parent.Radius / 2
	if childRadius <= ctx.Tuning.MinAsteroidRadius {
		return nil
	}

	children := make([]*Entity, 0, AsteroidSplitCount)
	for i := 0; i < AsteroidSplitCount; i++ {
		velocity := RandomVelocity(ctx.Rand, ctx.Tuning.AsteroidMinSpeed, ctx.Tuning.AsteroidMaxSpeed)
		position := parent.Position.Add(velocity.Normalize().Scale(parent.Radius - childRadius))
		children = append(children, NewAsteroid(ctx.IDs.Next(), position, velocity, childRadius))
	}
	return children
}

// RandomVelocity returns a vector with a uniformly random heading and a
// speed drawn uniformly from [minSpeed, maxSpeed].
func RandomVelocity(rng *rand.Rand, minSpeed, maxSpeed float64) physics.Vector2D {
	angle := rng.Float64() * 2 * math.Pi
	speed := minSpeed + rng.Float64()*(maxSpeed-minSpeed)
	return physics.FromAngle(angle, speed)
}
