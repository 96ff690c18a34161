package audio

import (
	"math"

	"github.com/san-kum/gravsim/internal/gravity"
)

const (
	// DefaultFrequency is used for bodies whose tone is not a number (C4).
	DefaultFrequency = 261.63

	panRange      = 400.0
	distanceScale = 200.0
	minGain       = 0.1
	baseGain      = 0.5
)

// Voice is the sound of one body: a sine at Freq Hz, panned between -1
// (left) and 1 (right).
type Voice struct {
	Freq float64
	Pan  float64
	Gain float64
}

// VoiceFor maps a body to a voice. Pan follows x and loudness falls off with
// distance from the origin.
func VoiceFor(r gravity.Result) Voice {
	freq, ok := r.Tone.Float64()
	if !ok || !(freq > 0) || math.IsInf(freq, 0) {
		freq = DefaultFrequency
	}

	dist := math.Hypot(r.X, r.Y)

	return Voice{
		Freq: freq,
		Pan:  math.Max(-1, math.Min(1, r.X/panRange)),
		Gain: math.Max(minGain, baseGain/(1+dist/distanceScale)),
	}
}

// Voices maps every body in order. Massless bodies are silent tracers and
// are skipped.
func Voices(results []gravity.Result) []Voice {
	out := make([]Voice, 0, len(results))
	for _, r := range results {
		if r.Mass <= 0 {
			continue
		}
		out = append(out, VoiceFor(r))
	}
	return out
}
