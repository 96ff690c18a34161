package config

import (
	"math"
	"sort"

	"github.com/san-kum/gravsim/internal/gravity"
)

// Tones used by the browser client's body editor.
const (
	toneC4 = 261.63
	toneE4 = 329.63
	toneG4 = 392.00
	toneC5 = 523.25
	toneC3 = 130.81
)

type Preset struct {
	Name        string
	Description string
	Dt          float64
	Bodies      []gravity.Spec
}

func body(id string, mass, x, y, vx, vy, tone float64) gravity.Spec {
	return gravity.Spec{
		Mass: mass, X: x, Y: y, VX: vx, VY: vy,
		Tone: gravity.NumberValue(tone),
		ID:   gravity.StringValue(id),
	}
}

// circular returns the speed of a light body on a circular orbit of radius r
// around a central mass m.
func circular(m, r float64) float64 {
	return math.Sqrt(gravity.GravityConstant * m / r)
}

var Presets = map[string]*Preset{
	"binary": {
		Name:        "binary",
		Description: "two equal stars on a shared circular orbit",
		Dt:          0.1,
		Bodies: []gravity.Spec{
			// each star feels K*m^2/d^2 = 10 at d=100, so v = sqrt(a*r) = sqrt(50)
			body("Star A", 10, -50, 0, 0, -math.Sqrt(50), toneC4),
			body("Star B", 10, 50, 0, 0, math.Sqrt(50), toneG4),
		},
	},
	"solar": {
		Name:        "solar",
		Description: "heavy sun with three light planets",
		Dt:          0.05,
		Bodies: []gravity.Spec{
			body("Sun", 1000, 0, 0, 0, 0, toneC3),
			body("Mercury", 1, 100, 0, 0, circular(1000, 100), toneC5),
			body("Venus", 1, 0, 200, -circular(1000, 200), 0, toneG4),
			body("Earth", 1, -300, 0, 0, -circular(1000, 300), toneE4),
		},
	},
	"trio": {
		Name:        "trio",
		Description: "three equal bodies released from rest",
		Dt:          0.1,
		Bodies: []gravity.Spec{
			body("Тело 1", 5, 0, 120, 0, 0, toneC4),
			body("Тело 2", 5, -104, -60, 0, 0, toneE4),
			body("Тело 3", 5, 104, -60, 0, 0, toneG4),
		},
	},
	"dust": {
		Name:        "dust",
		Description: "a star with massless tracers that never move",
		Dt:          0.1,
		Bodies: []gravity.Spec{
			body("Star", 500, 0, 0, 0, 0, toneC3),
			body("Planet", 1, 150, 0, 0, circular(500, 150), toneE4),
			body("Dust 1", 0, -150, 0, 0, 5, toneC5),
			body("Dust 2", 0, 0, -150, 5, 0, toneC5),
		},
	},
	"collision": {
		Name:        "collision",
		Description: "head-on approach that coasts through the interaction floor",
		Dt:          0.1,
		Bodies: []gravity.Spec{
			body("Left", 20, -150, 0, 4, 0, toneC4),
			body("Right", 20, 150, 0, -4, 0, toneG4),
		},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
