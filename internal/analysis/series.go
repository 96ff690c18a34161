package analysis

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/sim"
)

// Fields lists the per-body quantities Column understands.
var Fields = []string{"x", "y", "vx", "vy"}

func Column(frames []sim.Frame, body int, field string) ([]float64, error) {
	get, err := accessor(field)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(frames))
	for i, frame := range frames {
		if body < 0 || body >= len(frame.Bodies) {
			return nil, fmt.Errorf("body %d out of range (frame %d has %d bodies)", body, i, len(frame.Bodies))
		}
		out[i] = get(frame.Bodies[body])
	}
	return out, nil
}

// Times returns the timestamps of frames.
func Times(frames []sim.Frame) []float64 {
	out := make([]float64, len(frames))
	for i, frame := range frames {
		out[i] = frame.Time
	}
	return out
}

func accessor(field string) (func(gravity.Result) float64, error) {
	switch field {
	case "x":
		return func(r gravity.Result) float64 { return r.X }, nil
	case "y":
		return func(r gravity.Result) float64 { return r.Y }, nil
	case "vx":
		return func(r gravity.Result) float64 { return r.VX }, nil
	case "vy":
		return func(r gravity.Result) float64 { return r.VY }, nil
	default:
		return nil, fmt.Errorf("unknown field %q (available: %v)", field, Fields)
	}
}
