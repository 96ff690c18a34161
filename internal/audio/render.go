package audio

import (
	"errors"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/san-kum/gravsim/internal/sim"
)

// frameStreamer plays each recorded frame for a fixed number of samples.
type frameStreamer struct {
	synth    *Synth
	frames   []sim.Frame
	perFrame int
	frame    int
	pos      int
}

// NewFrameStreamer sonifies frames, holding each one for frameDuration. The
// streamer ends after the last frame.
func NewFrameStreamer(frames []sim.Frame, rate beep.SampleRate, frameDuration time.Duration) beep.Streamer {
	perFrame := rate.N(frameDuration)
	if perFrame < 1 {
		perFrame = 1
	}

	fs := &frameStreamer{
		synth:    NewSynth(int(rate)),
		frames:   frames,
		perFrame: perFrame,
	}
	if len(frames) > 0 {
		fs.synth.SetVoices(Voices(frames[0].Bodies))
	}
	return fs
}

func (f *frameStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if f.frame >= len(f.frames) {
			return n, n > 0
		}

		chunk := f.perFrame - f.pos
		if chunk > len(samples)-n {
			chunk = len(samples) - n
		}
		f.synth.Stream(samples[n : n+chunk])
		n += chunk
		f.pos += chunk

		if f.pos == f.perFrame {
			f.pos = 0
			f.frame++
			if f.frame < len(f.frames) {
				f.synth.SetVoices(Voices(f.frames[f.frame].Bodies))
			}
		}
	}
	return n, true
}

func (f *frameStreamer) Err() error { return nil }

// RenderWAV writes frames as a 16-bit stereo WAV file.
func RenderWAV(w io.WriteSeeker, frames []sim.Frame, frameDuration time.Duration) error {
	if len(frames) == 0 {
		return errors.New("audio: no frames to render")
	}

	rate := beep.SampleRate(SampleRate)
	format := beep.Format{
		SampleRate:  rate,
		NumChannels: 2,
		Precision:   2,
	}
	return wav.Encode(w, NewFrameStreamer(frames, rate, frameDuration), format)
}
