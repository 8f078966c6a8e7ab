package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/entity"
)

// DefaultHoldTimeout is how long a key counts as held after its last press
// or auto-repeat. It has to cover the terminal's initial repeat delay.
const DefaultHoldTimeout = 600 * time.Millisecond

// Action is a player command bound to one or more keys.
type Action int

const (
	ActionNone Action = iota
	ActionThrust
	ActionReverse
	ActionLeft
	ActionRight
	ActionFire
	ActionQuit
)

// ActionForKey maps a key event to an action: arrows or WASD steer, space
// fires, q, Esc or Ctrl-C quits.
func ActionForKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionThrust
	case tcell.KeyDown:
		return ActionReverse
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return ActionThrust
		case 's', 'S':
			return ActionReverse
		case 'a', 'A':
			return ActionLeft
		case 'd', 'D':
			return ActionRight
		case ' ':
			return ActionFire
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}

// KeyLatch turns key presses into held levels. Terminals report no key-up,
// so a key stays held until holdTimeout passes without another press.
type KeyLatch struct {
	holdTimeout time.Duration
	lastPress   map[Action]time.Time
}

// NewKeyLatch creates a latch; a non-positive timeout selects DefaultHoldTimeout.
func NewKeyLatch(holdTimeout time.Duration) *KeyLatch {
	if holdTimeout <= 0 {
		holdTimeout = DefaultHoldTimeout
	}
	return &KeyLatch{
		holdTimeout: holdTimeout,
		lastPress:   make(map[Action]time.Time),
	}
}

// Press records a press or repeat of the key bound to a.
func (l *KeyLatch) Press(a Action, now time.Time) {
	if a == ActionNone || a == ActionQuit {
		return
	}
	l.lastPress[a] = now
}

// Held reports whether a is still within its hold window at now.
func (l *KeyLatch) Held(a Action, now time.Time) bool {
	at, ok := l.lastPress[a]
	return ok && now.Sub(at) < l.holdTimeout
}

// Controls implements engine.ControlSource.
func (l *KeyLatch) Controls(now time.Time) entity.Controls {
	return entity.Controls{
		ThrustUp:   l.Held(ActionThrust, now),
		ThrustDown: l.Held(ActionReverse, now),
		Left:       l.Held(ActionLeft, now),
		Right:      l.Held(ActionRight, now),
		Firing:     l.Held(ActionFire, now),
	}
}

// TerminalInput feeds key events from a screen into a KeyLatch. Events are
// read on their own goroutine and handed over through a channel, so the
// latch itself is only touched from the frame loop.
type TerminalInput struct {
	latch      *KeyLatch
	events     chan *tcell.EventKey
	quit       chan struct{}
	quitClosed bool
}

// NewTerminalInput creates an input source; call Listen to start reading.
func NewTerminalInput(holdTimeout time.Duration) *TerminalInput {
	return &TerminalInput{
		latch:  NewKeyLatch(holdTimeout),
		events: make(chan *tcell.EventKey, 64),
		quit:   make(chan struct{}),
	}
}

// Listen polls screen for events until it is finalized. Run it in its own
// goroutine.
func (in *TerminalInput) Listen(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if key, ok := ev.(*tcell.EventKey); ok {
			select {
			case in.events <- key:
			default: // frame loop is behind; repeats will follow
			}
		}
	}
}

// Quit is closed once a quit key has been seen by Controls.
func (in *TerminalInput) Quit() <-chan struct{} {
	return in.quit
}

// Controls implements engine.ControlSource.
func (in *TerminalInput) Controls(now time.Time) entity.Controls {
	for {
		select {
		case ev := <-in.events:
			a := ActionForKey(ev)
			if a == ActionQuit && !in.quitClosed {
				in.quitClosed = true
				close(in.quit)
			}
			in.latch.Press(a, now)
		default:
			return in.latch.Controls(now)
		}
	}
}
