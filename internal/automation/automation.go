package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Bodies win over Preset.
type ScenarioStep struct {
	Preset   string            `yaml:"preset"`
	Bodies   []gravity.RawSpec `yaml:"bodies"`
	Duration float64           `yaml:"duration"`
	Dt       float64           `yaml:"dt"`
	SaveAs   string            `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// specs resolves the bodies of a step, and its dt when the step leaves it
// unset.
func (s ScenarioStep) specs() ([]gravity.Spec, float64, error) {
	dt := s.Dt

	if len(s.Bodies) > 0 {
		specs, err := gravity.DecodeSpecs(s.Bodies)
		if dt == 0 {
			dt = config.DefaultDt
		}
		return specs, dt, err
	}

	p := config.GetPreset(s.Preset)
	if p == nil {
		return nil, 0, fmt.Errorf("unknown preset: %q (available: %v)", s.Preset, config.ListPresets())
	}
	if dt == 0 {
		dt = p.Dt
	}
	return p.Bodies, dt, nil
}

// RunScenario executes all steps in order. Steps with SaveAs set are stored
// when store is non-nil; the returned ids line up with the results and are
// empty for unsaved steps.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, progress io.Writer) ([]*sim.Result, []string, error) {
	results := make([]*sim.Result, 0, len(scenario.Steps))
	ids := make([]string, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		specs, dt, err := step.specs()
		if err != nil {
			return results, ids, fmt.Errorf("step %d: %w", i+1, err)
		}

		label := step.Preset
		if len(step.Bodies) > 0 {
			label = "custom"
		}
		if progress != nil {
			fmt.Fprintf(progress, "running step %d/%d: %s\n", i+1, len(scenario.Steps), label)
		}

		cfg := sim.Config{Dt: dt, Duration: step.Duration, ValidateState: true}
		result, err := sim.New(nil).Run(ctx, specs, cfg)
		if err != nil {
			return results, ids, fmt.Errorf("step %d run: %w", i+1, err)
		}

		id := ""
		if step.SaveAs != "" && store != nil {
			id, err = store.Save(step.SaveAs, cfg, result)
			if err != nil {
				return results, ids, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, result)
		ids = append(ids, id)
	}

	return results, ids, nil
}

// MassSweep reruns a body set while varying the mass of one body
type MassSweep struct {
	Specs    []gravity.Spec
	Body     int
	MassMin  float64
	MassMax  float64
	NumSteps int
	Duration float64
	Dt       float64
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	Mass      float64
	Final     []gravity.Result
	MaxEnergy float64
	MinEnergy float64
	Drift     float64
}

// RunSweep executes a mass sweep
func RunSweep(ctx context.Context, sweep *MassSweep) ([]SweepResult, error) {
	if sweep.Body < 0 || sweep.Body >= len(sweep.Specs) {
		return nil, fmt.Errorf("body %d out of range", sweep.Body)
	}
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	massStep := (sweep.MassMax - sweep.MassMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		mass := sweep.MassMin + float64(i)*massStep

		specs := make([]gravity.Spec, len(sweep.Specs))
		copy(specs, sweep.Specs)
		specs[sweep.Body].Mass = mass

		s := sim.New(nil)
		minE, maxE := math.Inf(1), math.Inf(-1)
		s.AddObserver(observerFunc(func(bodies []gravity.Body, t float64) {
			e := gravity.Energy(bodies)
			minE = math.Min(minE, e)
			maxE = math.Max(maxE, e)
		}))

		result, err := s.Run(ctx, specs, sim.Config{Dt: sweep.Dt, Duration: sweep.Duration})
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			Mass:      mass,
			Final:     result.Frames[len(result.Frames)-1].Bodies,
			MaxEnergy: maxE,
			MinEnergy: minE,
			Drift:     result.EnergyDrift,
		})
	}

	return results, nil
}

type observerFunc func(bodies []gravity.Body, t float64)

func (f observerFunc) OnStep(bodies []gravity.Body, t float64) { f(bodies, t) }
