package sim

import (
	"context"
	"sync"

	"github.com/san-kum/gravsim/internal/gravity"
)

// Ensemble runs the same body set under several configurations at once,
// each on its own state.
type Ensemble struct {
	newMetrics func() []Metric
}

// NewEnsemble takes a factory so that every run observes fresh metric
// instances.
func NewEnsemble(newMetrics func() []Metric) *Ensemble {
	return &Ensemble{newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, specs []gravity.Spec, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(nil)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, specs, cfgs[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
