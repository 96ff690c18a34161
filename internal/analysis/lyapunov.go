package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/gravity"
)

// renormGrowth is how far the pair may drift apart, relative to the initial
// perturbation, before the perturbed copy is pulled back.
const renormGrowth = 1e3

// LyapunovExponent estimates the largest Lyapunov exponent of a body set
// with the Benettin two-trajectory method. A positive value indicates chaos;
// regular orbits tend to zero as duration grows.
//
// Algorithm:
//  1. Run the set and a copy with body's x shifted by perturbation
//  2. When their phase-space gap exceeds renormGrowth times the start, add
//     ln(gap/δ0) and rescale the copy back to δ0 along the same direction
//  3. λ ≈ (Σ ln(gap/δ0) + ln(final gap/δ0)) / t
func LyapunovExponent(specs []gravity.Spec, body int, dt, duration, perturbation float64) (float64, error) {
	if body < 0 || body >= len(specs) {
		return 0, fmt.Errorf("body %d out of range", body)
	}
	if perturbation <= 0 {
		return 0, fmt.Errorf("perturbation must be positive, got %f", perturbation)
	}
	if !(dt > 0) || !(duration > 0) {
		return 0, fmt.Errorf("dt and duration must be positive, got %f and %f", dt, duration)
	}

	perturbed := make([]gravity.Spec, len(specs))
	copy(perturbed, specs)
	perturbed[body].X += perturbation

	ref := gravity.NewState()
	if err := ref.Seed(specs); err != nil {
		return 0, err
	}
	alt := gravity.NewState()
	if err := alt.Seed(perturbed); err != nil {
		return 0, err
	}

	d0 := perturbation
	steps := int(duration/dt + 1e-9)
	if steps == 0 {
		return 0, nil
	}

	sumLog := 0.0
	sep := d0
	for i := 0; i < steps; i++ {
		a, err := ref.Step(nil, dt)
		if err != nil {
			return 0, err
		}
		b, err := alt.Step(nil, dt)
		if err != nil {
			return 0, err
		}

		sep = separation(a, b)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, fmt.Errorf("separation degenerated at step %d", i)
		}

		if sep > renormGrowth*d0 && i < steps-1 {
			sumLog += math.Log(sep / d0)
			if err := alt.Seed(renormalize(a, b, d0/sep)); err != nil {
				return 0, err
			}
			sep = d0
		}
	}
	sumLog += math.Log(sep / d0)

	return sumLog / (float64(steps) * dt), nil
}

func separation(a, b []gravity.Result) float64 {
	sum := 0.0
	for i := range a {
		for _, d := range [...]float64{b[i].X - a[i].X, b[i].Y - a[i].Y, b[i].VX - a[i].VX, b[i].VY - a[i].VY} {
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

func renormalize(a, b []gravity.Result, scale float64) []gravity.Spec {
	out := make([]gravity.Spec, len(a))
	for i := range a {
		out[i] = gravity.Spec{
			Mass: b[i].Mass,
			X:    a[i].X + (b[i].X-a[i].X)*scale,
			Y:    a[i].Y + (b[i].Y-a[i].Y)*scale,
			VX:   a[i].VX + (b[i].VX-a[i].VX)*scale,
			VY:   a[i].VY + (b[i].VY-a[i].VY)*scale,
			Tone: b[i].Tone,
			ID:   b[i].ID,
		}
	}
	return out
}
