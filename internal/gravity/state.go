package gravity

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// GravityConstant is tuned for on-screen motion, not physical units.
	GravityConstant = 1000.0

	// MinDistance is the separation at or below which a pair does not interact.
	MinDistance = 10.0
)

// State is one simulation buffer: an ordered body set that is replaced
// wholesale on reseed and mutated in place on every step.
type State struct {
	mu     sync.Mutex
	bodies []Body
	forces []r2.Vec
}

// NewState returns an empty State.
func NewState() *State {
	return &State{}
}

// Step optionally reseeds the state with specs and then advances it by dt.
// A nil or empty specs keeps the current bodies. On a validation error the
// state is left exactly as it was.
func (s *State) Step(specs []Spec, dt float64) ([]Result, error) {
	if err := checkDt(dt); err != nil {
		return nil, err
	}
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(specs) > 0 {
		s.bodies = makeBodies(specs)
	}
	s.advance(dt)
	return s.results(), nil
}

// Seed replaces the body set without advancing it.
func (s *State) Seed(specs []Spec) error {
	if err := validateSpecs(specs); err != nil {
		return err
	}
	s.mu.Lock()
	s.bodies = makeBodies(specs)
	s.mu.Unlock()
	return nil
}

// Reset empties the state.
func (s *State) Reset() {
	s.mu.Lock()
	s.bodies = nil
	s.mu.Unlock()
}

// Len returns the number of bodies.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}

// Bodies returns a copy of the current body set.
func (s *State) Bodies() []Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Results returns the current body set in boundary form without stepping.
func (s *State) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results()
}

func (s *State) results() []Result {
	out := make([]Result, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = b.Result()
	}
	return out
}

// advance performs one semi-implicit Euler step. Caller holds mu.
func (s *State) advance(dt float64) {
	n := len(s.bodies)
	if n == 0 {
		return
	}

	if cap(s.forces) < n {
		s.forces = make([]r2.Vec, n)
	} else {
		s.forces = s.forces[:n]
		clear(s.forces)
	}
	accumulateForces(s.bodies, s.forces)

	for i := range s.bodies {
		b := &s.bodies[i]
		if !b.Active() {
			continue
		}
		acc := r2.Vec{X: s.forces[i].X / b.Mass, Y: s.forces[i].Y / b.Mass}
		b.Vel = r2.Add(b.Vel, r2.Scale(dt, acc))
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	}
}

// accumulateForces adds the net pairwise force on every body into forces.
// Each distinct pair is visited once and contributes equal and opposite
// forces to its two members.
func accumulateForces(bodies []Body, forces []r2.Vec) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r, d, ok := interaction(bodies[i], bodies[j])
			if !ok {
				continue
			}
			f := r2.Scale(GravityConstant*bodies[i].Mass*bodies[j].Mass/(d*d*d), r)
			forces[i] = r2.Add(forces[i], f)
			forces[j] = r2.Sub(forces[j], f)
		}
	}
}

// interaction returns the displacement a->b and its length when the pair
// interacts at all.
func interaction(a, b Body) (r2.Vec, float64, bool) {
	if !a.Active() || !b.Active() {
		return r2.Vec{}, 0, false
	}
	r := r2.Sub(b.Pos, a.Pos)
	d := r2.Norm(r)
	if d <= MinDistance {
		return r2.Vec{}, 0, false
	}
	return r, d, true
}

func makeBodies(specs []Spec) []Body {
	bodies := make([]Body, len(specs))
	for i, sp := range specs {
		bodies[i] = sp.body()
	}
	return bodies
}

func validateSpecs(specs []Spec) error {
	for i, sp := range specs {
		if err := sp.Validate(); err != nil {
			return withIndex(err, i)
		}
	}
	return nil
}

func checkDt(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &ValidationError{Index: -1, Field: "dt", Reason: "not a finite number"}
	}
	if dt <= 0 {
		return &ValidationError{Index: -1, Field: "dt", Reason: "must be positive"}
	}
	return nil
}
