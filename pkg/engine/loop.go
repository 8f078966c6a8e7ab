package engine

import (
	"context"
	"time"

	"github.com/opd-ai/go-asteroids/pkg/entity"
)

// Presenter receives the snapshot produced by each tick. Returning false
// stops the loop.
type Presenter func(state *GameState) bool

// ControlSource reports the input levels for the frame at now. It is only
// called from the loop goroutine.
type ControlSource interface {
	Controls(now time.Time) entity.Controls
}

// ChannelControls is a ControlSource fed by a channel. Each frame it drains
// whatever is pending and reports the latest value.
type ChannelControls struct {
	C    <-chan entity.Controls
	last entity.Controls
}

// Controls implements ControlSource.
func (c *ChannelControls) Controls(time.Time) entity.Controls {
	for {
		select {
		case next, ok := <-c.C:
			if !ok {
				return c.last
			}
			c.last = next
		default:
			return c.last
		}
	}
}

// Run drives g at the configured frame rate until ctx is cancelled, present
// returns false, or maxFrames ticks have run (0 means no limit). A nil
// input leaves the controls as they are. Run must be the only goroutine
// touching g.
func Run(ctx context.Context, g *Game, input ControlSource, present Presenter, maxFrames uint64) error {
	fps := g.Config.Loop.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var frames uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if input != nil {
				g.SetControls(input.Controls(now))
			}
			state := g.Tick(now)
			frames++
			if !present(state) {
				return nil
			}
			if maxFrames > 0 && frames >= maxFrames {
				return nil
			}
		}
	}
}
