// Package audio plays the DAC output through the host sound card. The audio
// device clocks the generator: every tick is held for a fixed number of
// output frames.
package audio

import "dacwave/core"

// StepFunc produces the next DAC sample; core.Generator.Step satisfies it
type StepFunc func() core.Sample

// Stream is an io.Reader of unsigned 8-bit mono PCM pulled from a StepFunc.
// Read must only be called from one goroutine at a time.
type Stream struct {
	step StepFunc
	hold int
	left int
	cur  byte
}

// NewStream holds each sample for framesPerTick output frames
func NewStream(step StepFunc, framesPerTick int) *Stream {
	if framesPerTick < 1 {
		framesPerTick = 1
	}
	return &Stream{step: step, hold: framesPerTick}
}

// Read fills p with PCM frames. The DAC only spans 0..127, so samples are
// doubled to use the whole 8-bit range.
func (s *Stream) Read(p []byte) (int, error) {
	for i := range p {
		if s.left == 0 {
			s.cur = byte(s.step()) << 1
			s.left = s.hold
		}
		p[i] = s.cur
		s.left--
	}
	return len(p), nil
}
