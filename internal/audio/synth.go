package audio

import (
	"math"
	"sync"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	masterVolume = 0.25
)

// Synth is a bank of stereo sine oscillators. SetVoices may be called from
// the simulation goroutine while the audio callback reads samples.
type Synth struct {
	mu     sync.Mutex
	rate   float64
	voices []Voice
	phases []float64
}

func NewSynth(rate int) *Synth {
	return &Synth{rate: float64(rate)}
}

// SetVoices replaces the voice set. Oscillator phases carry over by index so
// a changing voice does not click.
func (s *Synth) SetVoices(voices []Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.voices = append(s.voices[:0], voices...)
	if len(s.phases) < len(voices) {
		s.phases = append(s.phases, make([]float64, len(voices)-len(s.phases))...)
	}
	s.phases = s.phases[:len(voices)]
}

// Stream implements beep.Streamer. It never runs dry.
func (s *Synth) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range samples {
		samples[i][0], samples[i][1] = s.next()
	}
	return len(samples), true
}

func (s *Synth) Err() error { return nil }

// Process fills a non-interleaved stereo buffer, as portaudio hands it to a
// stream callback.
func (s *Synth) Process(out [][]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range out[0] {
		l, r := s.next()
		out[0][i] = float32(l)
		if len(out) > 1 {
			out[1][i] = float32(r)
		}
	}
}

// next must be called with mu held.
func (s *Synth) next() (left, right float64) {
	if len(s.voices) == 0 {
		return 0, 0
	}

	norm := masterVolume / float64(len(s.voices))
	for j, v := range s.voices {
		sample := math.Sin(2*math.Pi*s.phases[j]) * v.Gain * norm

		// Equal-power pan.
		angle := (v.Pan + 1) * math.Pi / 4
		left += sample * math.Cos(angle)
		right += sample * math.Sin(angle)

		s.phases[j] += v.Freq / s.rate
		s.phases[j] -= math.Floor(s.phases[j])
	}
	return left, right
}
