package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/gravity"
	"gonum.org/v1/gonum/spatial/r2"
)

// ClosestApproach tracks the smallest separation seen between two
// interacting bodies. Values at or below gravity.MinDistance mean the pair
// passed through the force floor.
type ClosestApproach struct {
	name string
	min  float64
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{
		name: "closest_approach",
		min:  math.Inf(1),
	}
}

func (c *ClosestApproach) Name() string {
	return c.name
}

func (c *ClosestApproach) Observe(bodies []gravity.Body, t float64) {
	for i := 0; i < len(bodies); i++ {
		if !bodies[i].Active() {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if !bodies[j].Active() {
				continue
			}
			c.min = math.Min(c.min, r2.Norm(r2.Sub(bodies[j].Pos, bodies[i].Pos)))
		}
	}
}

// Value is +Inf when no interacting pair was observed.
func (c *ClosestApproach) Value() float64 {
	return c.min
}

func (c *ClosestApproach) Reset() {
	c.min = math.Inf(1)
}
