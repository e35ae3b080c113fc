// Package probe decodes the telemetry a board streams over its serial link
package probe

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"dacwave/core"
	"dacwave/output"
	"dacwave/protocol"
)

// readIdle is how long Run waits after a read that timed out without data
const readIdle = 5 * time.Millisecond

// ModeHandler is called for every mode report received
type ModeHandler func(mode core.Mode, tick core.Tick)

// Probe feeds bytes from a port through a protocol.Receiver, publishing
// samples into a ring and mode reports to a callback
type Probe struct {
	port io.ReadCloser
	ring *output.Ring

	mu       sync.Mutex
	fifo     *protocol.FifoBuffer
	rx       *protocol.Receiver
	version  string
	mode     core.Mode
	lastTick core.Tick
	onMode   ModeHandler

	closed atomic.Bool
}

// New creates a probe reading from port. ring may be nil.
func New(port io.ReadCloser, ring *output.Ring) *Probe {
	p := &Probe{
		port: port,
		ring: ring,
		fifo: protocol.NewFifoBuffer(4 * protocol.MessageLengthMax),
	}
	p.rx = protocol.NewReceiver(p.handleMessage)
	return p
}

// OnMode registers the mode report callback. It runs on the Run goroutine
// and must not call back into the probe.
func (p *Probe) OnMode(fn ModeHandler) {
	p.mu.Lock()
	p.onMode = fn
	p.mu.Unlock()
}

// Run reads the port until it fails or Close is called
func (p *Probe) Run() error {
	buf := make([]byte, 256)
	for {
		n, err := p.port.Read(buf)
		if n > 0 {
			p.Feed(buf[:n])
		}
		if p.closed.Load() {
			return nil
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			// tarm/serial reports a read timeout as EOF
			if n == 0 {
				time.Sleep(readIdle)
			}
		default:
			return fmt.Errorf("read telemetry: %w", err)
		}
	}
}

// Feed pushes received bytes through the frame decoder
func (p *Probe) Feed(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(data) > 0 {
		n := p.fifo.Write(data)
		data = data[n:]
		p.rx.Receive(p.fifo)
		if n == 0 && p.fifo.Free() == 0 {
			// A full buffer the receiver cannot consume is garbage
			p.fifo.Reset()
		}
	}
}

func (p *Probe) handleMessage(msgID uint16, data *[]byte) error {
	switch msgID {
	case protocol.MsgIdentify:
		v, err := protocol.DecodeIdentify(data)
		if err != nil {
			return err
		}
		p.version = v
		core.DebugPrintln("probe: board version " + v)

	case protocol.MsgModeReport:
		m, tick, err := protocol.DecodeModeReport(data)
		if err != nil {
			return err
		}
		p.mode = core.Mode(m)
		p.lastTick = core.Tick(tick)
		if p.onMode != nil {
			p.onMode(p.mode, p.lastTick)
		}

	case protocol.MsgSampleBlock:
		tick, samples, err := protocol.DecodeSampleBlock(data)
		if err != nil {
			return err
		}
		p.lastTick = core.Tick(tick)
		if p.ring != nil {
			p.ring.Write(samples)
		}

	default:
		return protocol.ErrUnknownMessage
	}
	return nil
}

// Version returns the firmware version reported by the board, if any
func (p *Probe) Version() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Mode returns the last reported mode
func (p *Probe) Mode() core.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Stats returns the link counters
func (p *Probe) Stats() protocol.ReceiverStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rx.Stats()
}

// Close stops Run and closes the port
func (p *Probe) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.port.Close()
}
