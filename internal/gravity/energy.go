package gravity

import "gonum.org/v1/gonum/spatial/r2"

// Energy returns kinetic plus potential energy of the interacting bodies.
// The potential only counts pairs that would exert force on each other, so
// it stays consistent with the distance floor.
func Energy(bodies []Body) float64 {
	ke := 0.0
	pe := 0.0

	for i, b := range bodies {
		if b.Active() {
			ke += 0.5 * b.Mass * r2.Norm2(b.Vel)
		}
		for j := i + 1; j < len(bodies); j++ {
			if _, d, ok := interaction(b, bodies[j]); ok {
				pe -= GravityConstant * b.Mass * bodies[j].Mass / d
			}
		}
	}

	return ke + pe
}

// Momentum returns the total linear momentum of bodies with positive mass.
func Momentum(bodies []Body) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		if b.Active() {
			p = r2.Add(p, r2.Scale(b.Mass, b.Vel))
		}
	}
	return p
}

// CenterOfMass returns the mass-weighted mean position of bodies with
// positive mass, or the zero vector if there are none.
func CenterOfMass(bodies []Body) r2.Vec {
	var c r2.Vec
	total := 0.0
	for _, b := range bodies {
		if b.Active() {
			c = r2.Add(c, r2.Scale(b.Mass, b.Pos))
			total += b.Mass
		}
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, c)
}
