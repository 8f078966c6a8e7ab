package audio

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
)

const (
	sampleRate    = beep.SampleRate(44100)
	defaultVolume = 0.5
)

// SoundManager plays one short effect per simulation event. Every effect is
// added to a single mixer that the speaker streams continuously.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *rand.Rand
	volume      float64
	initialized bool
	subs        []*event.Subscription

	logger *logging.Logger
	ctx    context.Context

	// play hands a streamer to the output; replaced in tests.
	play func(beep.Streamer)
}

// NewSoundManager creates a new sound manager
func NewSoundManager(logger *logging.Logger) *SoundManager {
	if logger == nil {
		logger = logging.Discard()
	}
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		volume: defaultVolume,
		logger: logger,
		ctx:    context.Background(),
	}
	sm.play = sm.playOnSpeaker
	return sm
}

// Initialize opens the speaker and starts streaming the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetVolume sets the linear volume for effects created after the call.
func (sm *SoundManager) SetVolume(volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = volume
}

// Subscribe plays effects for events published on bus until Close.
func (sm *SoundManager) Subscribe(bus *event.Bus) {
	bind := map[event.Type]Effect{
		event.GameStarted:       EffectStart,
		event.BulletFired:       EffectFire,
		event.AsteroidSplit:     EffectSplit,
		event.AsteroidDestroyed: EffectDestroy,
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	for t, effect := range bind {
		sm.subs = append(sm.subs, bus.Subscribe(t, func(event.Event) {
			sm.Play(effect)
		}))
	}
}

// Play starts effect. It does nothing before Initialize unless a test
// output has been installed.
func (sm *SoundManager) Play(effect Effect) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, err := NewEffect(effect, sampleRate, sm.volume, sm.rng)
	if err != nil {
		sm.logger.Warn(sm.ctx, "sound effect unavailable", "effect", effect.String(), "error", err)
		return
	}
	sm.play(s)
}

func (sm *SoundManager) playOnSpeaker(s beep.Streamer) {
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Close cancels event subscriptions and stops all sounds.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for _, sub := range sm.subs {
		sub.Cancel()
	}
	sm.subs = nil

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
