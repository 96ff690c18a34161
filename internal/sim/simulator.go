package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/gravity"
)

type Simulator struct {
	state     *gravity.State
	metrics   []Metric
	observers []Observer
}

// New wraps state in a Simulator. A nil state gets a fresh one.
func New(state *gravity.State) *Simulator {
	if state == nil {
		state = gravity.NewState()
	}
	return &Simulator{
		state:     state,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) State() *gravity.State { return s.state }

// Run seeds the state with specs (if any) and advances it for cfg.Duration.
// The returned result holds the initial frame plus one frame per step.
func (s *Simulator) Run(ctx context.Context, specs []gravity.Spec, cfg Config) (*Result, error) {
	if err := s.prepare(specs, cfg); err != nil {
		return nil, err
	}

	steps := stepCount(cfg)
	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, Frame{Time: t, Bodies: s.state.Results()})
	initialEnergy := gravity.Energy(s.state.Bodies())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		bodies := s.state.Bodies()
		for _, m := range s.metrics {
			m.Observe(bodies, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(bodies, t)
		}

		positions, err := s.state.Step(nil, cfg.Dt)
		if err != nil {
			return result, err
		}

		if cfg.ValidateState && !finite(positions) {
			result.Errors = append(result.Errors, StepError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		t += cfg.Dt
		result.StepsTaken++
		result.Frames = append(result.Frames, Frame{Time: t, Bodies: positions})
	}

	finalEnergy := gravity.Energy(s.state.Bodies())
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback streams frames to callback until the duration elapses,
// the context ends, or callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, specs []gravity.Spec, cfg Config, callback func(Frame) bool) error {
	if err := s.prepare(specs, cfg); err != nil {
		return err
	}

	t := 0.0
	if !callback(Frame{Time: t, Bodies: s.state.Results()}) {
		return nil
	}

	for i := 0; i < stepCount(cfg); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		positions, err := s.state.Step(nil, cfg.Dt)
		if err != nil {
			return err
		}
		t += cfg.Dt

		if cfg.ValidateState && !finite(positions) {
			return fmt.Errorf("invalid state at t=%.4f", t)
		}
		if !callback(Frame{Time: t, Bodies: positions}) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) prepare(specs []gravity.Spec, cfg Config) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if len(specs) > 0 {
		if err := s.state.Seed(specs); err != nil {
			return err
		}
	}
	if s.state.Len() == 0 {
		return ErrNoBodies
	}
	return nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func stepCount(cfg Config) int {
	return int(cfg.Duration/cfg.Dt + 1e-9)
}

func finite(positions []gravity.Result) bool {
	for _, p := range positions {
		for _, v := range [...]float64{p.X, p.Y, p.VX, p.VY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
