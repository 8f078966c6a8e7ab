package audio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Effect identifies a sound tied to a simulation event.
type Effect int

const (
	EffectStart Effect = iota
	EffectFire
	EffectSplit
	EffectDestroy
)

// String returns the lower-case name of the effect.
func (e Effect) String() string {
	switch e {
	case EffectStart:
		return "start"
	case EffectFire:
		return "fire"
	case EffectSplit:
		return "split"
	case EffectDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// noise generates white noise for a fixed number of samples.
type noise struct {
	rng       *rand.Rand
	remaining int
}

func newNoise(rng *rand.Rand, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &noise{rng: rng, remaining: rate.N(duration)}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.remaining <= 0 {
		return 0, false
	}
	count := min(len(samples), n.remaining)
	for i := 0; i < count; i++ {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	n.remaining -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// envelope applies a linear attack and an exponential decay to a stream
// and ends it after duration.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
	decay    float64 // per-sample multiplier after the attack
}

func newEnvelope(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	// Fall to about 1% of full volume by the end.
	decay := 1.0
	if rest := total - att; rest > 0 {
		decay = math.Pow(0.01, 1/float64(rest))
	}
	return &envelope{streamer: s, attack: att, total: total, decay: decay}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.position >= e.total {
		return 0, false
	}
	if left := e.total - e.position; len(samples) > left {
		samples = samples[:left]
	}
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		} else {
			vol = math.Pow(e.decay, float64(e.position-e.attack))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; zero or less silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(rate beep.SampleRate, freq float64, duration, attack time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create %g Hz tone: %w", freq, err)
	}
	return newEnvelope(beep.Take(rate.N(duration), sine), duration, attack, rate), nil
}

// NewEffect builds the streamer for effect at the given linear volume.
func NewEffect(effect Effect, rate beep.SampleRate, volume float64, rng *rand.Rand) (beep.Streamer, error) {
	var s beep.Streamer
	switch effect {
	case EffectStart:
		low, err := tone(rate, 440, 120*time.Millisecond, 5*time.Millisecond)
		if err != nil {
			return nil, err
		}
		high, err := tone(rate, 660, 180*time.Millisecond, 5*time.Millisecond)
		if err != nil {
			return nil, err
		}
		s = beep.Seq(low, high)
	case EffectFire:
		zap, err := tone(rate, 1320, 60*time.Millisecond, 2*time.Millisecond)
		if err != nil {
			return nil, err
		}
		s = zap
	case EffectSplit:
		crack := newEnvelope(newNoise(rng, 200*time.Millisecond, rate), 200*time.Millisecond, 3*time.Millisecond, rate)
		thud, err := tone(rate, 90, 200*time.Millisecond, 3*time.Millisecond)
		if err != nil {
			return nil, err
		}
		s = beep.Mix(withVolume(crack, 0.6), withVolume(thud, 0.4))
	case EffectDestroy:
		s = newEnvelope(newNoise(rng, 120*time.Millisecond, rate), 120*time.Millisecond, 2*time.Millisecond, rate)
	default:
		return nil, fmt.Errorf("unknown effect %d", int(effect))
	}
	return withVolume(s, volume), nil
}
