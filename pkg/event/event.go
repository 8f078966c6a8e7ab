// pkg/event/event.go
package event

import (
	"sync"
	"time"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	GameStarted       Type = "game_started"
	BulletFired       Type = "bullet_fired"
	BulletDestroyed   Type = "bullet_destroyed"
	AsteroidSplit     Type = "asteroid_split"
	AsteroidDestroyed Type = "asteroid_destroyed"
	EntityCollision   Type = "entity_collision"
	FrameCompleted    Type = "frame_completed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(id) },
	}
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			// Copy so that a Publish iterating the old slice is unaffected.
			remaining := make([]subscriber, 0, len(subs)-1)
			remaining = append(remaining, subs[:i]...)
			remaining = append(remaining, subs[i+1:]...)
			if len(remaining) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = remaining
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// EntityEvent reports something that happened to a single entity.
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Kind     string
	Position physics.Vector2D
	Radius   float64
	// Children holds the IDs of the fragments for AsteroidSplit.
	Children []uint64
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, id uint64, kind string, position physics.Vector2D, radius float64) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: id,
		Kind:     kind,
		Position: position,
		Radius:   radius,
	}
}

// CollisionEvent contains information about entity collisions
type CollisionEvent struct {
	BaseEvent
	EntityA uint64
	EntityB uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, entityA, entityB uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: EntityCollision,
			Source:    source,
		},
		EntityA: entityA,
		EntityB: entityB,
	}
}

// FrameEvent summarizes one simulation step.
type FrameEvent struct {
	BaseEvent
	Tick      uint64
	Time      time.Time
	Dt        float64 // seconds simulated, after clamping
	Elapsed   time.Duration
	Entities  int
	Asteroids int
	Bullets   int
	Overlaps  int // overlapping pairs detected
	Spawned   int
	Removed   int
}

// NewFrameEvent creates a FrameCompleted event for the given tick.
func NewFrameEvent(source interface{}, tick uint64, now time.Time, dt float64) *FrameEvent {
	return &FrameEvent{
		BaseEvent: BaseEvent{
			EventType: FrameCompleted,
			Source:    source,
		},
		Tick: tick,
		Time: now,
		Dt:   dt,
	}
}
