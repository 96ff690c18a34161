package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Player plays a Synth on the default output device.
type Player struct {
	synth  *Synth
	stream *portaudio.Stream
}

func NewPlayer(synth *Synth) *Player {
	return &Player{synth: synth}
}

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	// Output only: 0 in, 2 out.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.synth.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}

	p.stream = stream
	return nil
}

func (p *Player) Stop() error {
	if p.stream == nil {
		return nil
	}

	err := p.stream.Stop()
	if cerr := p.stream.Close(); err == nil {
		err = cerr
	}
	p.stream = nil

	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
