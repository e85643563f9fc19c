package solver

import "context"

// Metric is a named probe evaluated against the solver during a run.
// Observe may accumulate (peaks, drifts) or just record the latest value;
// Value reports the current reading.
type Metric interface {
	Name() string
	Observe(s *Solver, t float64)
	Value() float64
	Reset()
}

// Observer receives a callback after every sampled step.
type Observer interface {
	OnStep(s *Solver, t float64)
}

// RunConfig describes one headless simulation run.
type RunConfig struct {
	// Duration is the simulated time to cover.
	Duration float64
	// SampleEvery records the series every N steps (default 1).
	SampleEvery int
	// MaxSteps caps the run regardless of duration (0 means no cap),
	// a guard against a collapsing timestep spinning forever.
	MaxSteps int
}

// Result is the recorded outcome of a run: sampled time series per metric,
// final metric values, and any health warnings the solver raised.
type Result struct {
	Times      []float64
	Dts        []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	Warnings   []Warning
	StepsTaken int
}

// Run advances the solver until the simulated duration is covered,
// sampling metrics and notifying observers along the way. A canceled
// context returns the partial result with the context error.
func (s *Solver) Run(ctx context.Context, cfg RunConfig, metrics []Metric, observers ...Observer) (*Result, error) {
	stride := cfg.SampleEvery
	if stride <= 0 {
		stride = 1
	}

	res := &Result{
		Series:  make(map[string][]float64, len(metrics)),
		Metrics: make(map[string]float64, len(metrics)),
	}
	for _, m := range metrics {
		m.Reset()
	}

	sample := func() {
		t := s.clock.Time
		res.Times = append(res.Times, t)
		res.Dts = append(res.Dts, s.clock.Dt)
		for _, m := range metrics {
			m.Observe(s, t)
			res.Series[m.Name()] = append(res.Series[m.Name()], m.Value())
		}
		for _, o := range observers {
			o.OnStep(s, t)
		}
	}

	sample()
	for s.clock.Time < cfg.Duration {
		select {
		case <-ctx.Done():
			res.Warnings = s.warnings
			return res, ctx.Err()
		default:
		}
		if cfg.MaxSteps > 0 && res.StepsTaken >= cfg.MaxSteps {
			break
		}

		s.Advance()
		res.StepsTaken++

		if s.clock.Step%stride == 0 {
			sample()
		}
	}

	for _, m := range metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	res.Warnings = s.warnings
	return res, nil
}
