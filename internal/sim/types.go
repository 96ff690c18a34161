package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/gravsim/internal/gravity"
)

// ErrNoBodies is returned when a run starts from an empty state.
var ErrNoBodies = errors.New("sim: no bodies to simulate")

type Metric interface {
	Name() string
	Observe(bodies []gravity.Body, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(bodies []gravity.Body, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.1,
		Duration:      60.0,
		ValidateState: true,
	}
}

// Frame is the body set at one instant of a run.
type Frame struct {
	Time   float64          `json:"time"`
	Bodies []gravity.Result `json:"bodies"`
}

type Result struct {
	Frames      []Frame
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

type StepError struct {
	Time    float64
	Step    int
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
