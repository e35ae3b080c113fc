package output

import (
	"io"

	"dacwave/core"
	"dacwave/protocol"
)

// FrameSink streams samples and mode changes to the host as telemetry
// frames. Samples are batched into blocks; a mode report flushes the pending
// block first so the host sees events in order. Not safe for concurrent use.
type FrameSink struct {
	w     io.Writer
	out   protocol.ScratchOutput
	tel   *protocol.Telemetry
	block []byte
	size  int

	blockTick core.Tick
	next      core.Tick

	errors uint32
}

// NewFrameSink creates a sink sending blocks of blockSize samples to w.
// blockSize is capped to what fits one frame.
func NewFrameSink(w io.Writer, blockSize int) *FrameSink {
	if blockSize < 1 || blockSize > protocol.SampleBlockMax {
		blockSize = protocol.SampleBlockMax
	}
	f := &FrameSink{
		w:     w,
		block: make([]byte, 0, blockSize),
		size:  blockSize,
	}
	f.tel = protocol.NewTelemetry(&f.out)
	return f
}

// Identify sends the version message
func (f *FrameSink) Identify() {
	f.tel.SendIdentify(protocol.Version)
	f.send()
}

// WriteSample implements core.SampleSink
func (f *FrameSink) WriteSample(s core.Sample) {
	if len(f.block) == 0 {
		f.blockTick = f.next
	}
	f.block = append(f.block, byte(s))
	f.next = f.next.Next()
	if len(f.block) == f.size {
		f.Flush()
	}
}

// ReportMode sends a mode report; it matches core.ModeChangeHook
func (f *FrameSink) ReportMode(mode core.Mode, tick core.Tick) {
	f.Flush()
	f.next = tick
	f.tel.SendModeReport(uint8(mode), uint32(tick))
	f.send()
}

// Flush sends the pending sample block, if any
func (f *FrameSink) Flush() {
	if len(f.block) == 0 {
		return
	}
	f.tel.SendSampleBlock(uint32(f.blockTick), f.block)
	f.block = f.block[:0]
	f.send()
}

// Errors returns the number of failed writes
func (f *FrameSink) Errors() uint32 {
	return f.errors
}

// Frames returns the number of frames encoded
func (f *FrameSink) Frames() uint32 {
	return f.tel.Frames()
}

func (f *FrameSink) send() {
	if _, err := f.w.Write(f.out.Result()); err != nil {
		f.errors++
	}
	f.out.Reset()
}
