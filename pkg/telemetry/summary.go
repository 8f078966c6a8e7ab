package telemetry

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a run from its frame records.
type Summary struct {
	Frames int

	MeanDt   float64 // seconds
	StdDevDt float64

	MeanStepUS float64
	P50StepUS  float64
	P95StepUS  float64
	P99StepUS  float64

	MaxEntities  int
	MaxAsteroids int
	MaxBullets   int
	TotalSpawned int
	TotalRemoved int
}

// Summarize computes a Summary. An empty input gives the zero Summary.
func Summarize(records []FrameRecord) Summary {
	s := Summary{Frames: len(records)}
	if len(records) == 0 {
		return s
	}

	dts := make([]float64, len(records))
	steps := make([]float64, len(records))
	for i, r := range records {
		dts[i] = r.Dt
		steps[i] = float64(r.StepUS)
		s.MaxEntities = max(s.MaxEntities, r.Entities)
		s.MaxAsteroids = max(s.MaxAsteroids, r.Asteroids)
		s.MaxBullets = max(s.MaxBullets, r.Bullets)
		s.TotalSpawned += r.Spawned
		s.TotalRemoved += r.Removed
	}

	s.MeanDt = stat.Mean(dts, nil)
	if len(dts) > 1 {
		s.StdDevDt = stat.StdDev(dts, nil)
	}

	s.MeanStepUS = stat.Mean(steps, nil)
	sort.Float64s(steps)
	s.P50StepUS = stat.Quantile(0.50, stat.Empirical, steps, nil)
	s.P95StepUS = stat.Quantile(0.95, stat.Empirical, steps, nil)
	s.P99StepUS = stat.Quantile(0.99, stat.Empirical, steps, nil)
	return s
}

// String formats the summary for a log line or terminal.
func (s Summary) String() string {
	return fmt.Sprintf("frames=%d dt=%.4f±%.4fs step p50=%.0fus p95=%.0fus p99=%.0fus max_entities=%d",
		s.Frames, s.MeanDt, s.StdDevDt, s.P50StepUS, s.P95StepUS, s.P99StepUS, s.MaxEntities)
}
