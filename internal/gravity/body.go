package gravity

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is one simulated point mass.
type Body struct {
	ID   Value
	Mass float64
	Pos  r2.Vec
	Vel  r2.Vec
	Tone Value
}

// Active reports whether the body takes part in gravitational interaction.
func (b Body) Active() bool { return b.Mass > 0 }

// Result converts the body into its boundary representation.
func (b Body) Result() Result {
	return Result{
		X:    b.Pos.X,
		Y:    b.Pos.Y,
		VX:   b.Vel.X,
		VY:   b.Vel.Y,
		Tone: b.Tone,
		Mass: b.Mass,
		ID:   b.ID,
	}
}

// Spec is a complete body definition used to seed a State.
type Spec struct {
	Mass   float64
	X, Y   float64
	VX, VY float64
	Tone   Value
	ID     Value
}

// Validate rejects non-finite numerics.
func (s Spec) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"mass", s.Mass}, {"x", s.X}, {"y", s.Y}, {"vx", s.VX}, {"vy", s.VY},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ValidationError{Index: -1, Field: f.name, Reason: "not a finite number"}
		}
	}
	return nil
}

func (s Spec) body() Body {
	return Body{
		ID:   s.ID,
		Mass: s.Mass,
		Pos:  r2.Vec{X: s.X, Y: s.Y},
		Vel:  r2.Vec{X: s.VX, Y: s.VY},
		Tone: s.Tone,
	}
}

// RawSpec is the wire and config form of a body definition. Every field is
// required. A nil number (absent or null) fails validation; tone and id are
// opaque, so a JSON null there is kept and echoed, and only an absent key
// fails. YAML decodes null to the zero Value, which counts as absent.
type RawSpec struct {
	Mass *float64 `json:"mass" yaml:"mass"`
	X    *float64 `json:"x" yaml:"x"`
	Y    *float64 `json:"y" yaml:"y"`
	VX   *float64 `json:"vx" yaml:"vx"`
	VY   *float64 `json:"vy" yaml:"vy"`
	Tone Value    `json:"tone" yaml:"tone"`
	ID   Value    `json:"id" yaml:"id"`
}

// Validate checks presence of every field and returns the typed Spec.
func (r RawSpec) Validate() (Spec, error) {
	nums := []struct {
		name string
		v    *float64
	}{
		{"mass", r.Mass}, {"x", r.X}, {"y", r.Y}, {"vx", r.VX}, {"vy", r.VY},
	}
	for _, n := range nums {
		if n.v == nil {
			return Spec{}, &ValidationError{Index: -1, Field: n.name, Reason: "missing"}
		}
	}
	if r.Tone.IsZero() {
		return Spec{}, &ValidationError{Index: -1, Field: "tone", Reason: "missing"}
	}
	if r.ID.IsZero() {
		return Spec{}, &ValidationError{Index: -1, Field: "id", Reason: "missing"}
	}
	s := Spec{
		Mass: *r.Mass,
		X:    *r.X,
		Y:    *r.Y,
		VX:   *r.VX,
		VY:   *r.VY,
		Tone: r.Tone,
		ID:   r.ID,
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// RawFromSpec converts a Spec back into its wire form.
func RawFromSpec(s Spec) RawSpec {
	return RawSpec{
		Mass: &s.Mass,
		X:    &s.X,
		Y:    &s.Y,
		VX:   &s.VX,
		VY:   &s.VY,
		Tone: s.Tone,
		ID:   s.ID,
	}
}

// DecodeSpecs validates a full body list. It either returns every spec or
// the first failure, tagged with the offending index.
func DecodeSpecs(raw []RawSpec) ([]Spec, error) {
	specs := make([]Spec, len(raw))
	for i, r := range raw {
		s, err := r.Validate()
		if err != nil {
			return nil, withIndex(err, i)
		}
		specs[i] = s
	}
	return specs, nil
}

func withIndex(err error, i int) error {
	if ve, ok := err.(*ValidationError); ok {
		tagged := *ve
		tagged.Index = i
		return &tagged
	}
	return err
}

// Result is the per-body output of a step.
type Result struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Tone Value   `json:"tone"`
	Mass float64 `json:"mass"`
	ID   Value   `json:"id"`
}
