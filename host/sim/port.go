// Package sim models the lab board on the host: a GPIO port with edge
// detection feeding an in-memory NVIC, serviced by the real dispatcher
package sim

import (
	"sync"

	"dacwave/core"
)

// Port models the interrupt registers of one GPIO port. At reset every pin
// senses falling edges with its interrupt masked, as on the TM4C123.
type Port struct {
	mu  sync.Mutex
	is  uint32 // 1 = level sensitive
	ibe uint32 // 1 = both edges
	iev uint32 // 1 = rising edge / high level
	im  uint32 // interrupt mask, 1 = unmasked
	ris uint32 // raw interrupt status

	readbacks uint32
	notify    func()
}

// NewPort returns a port in its reset state
func NewPort() *Port {
	return &Port{}
}

// setNotify registers the interrupt request line of the port
func (p *Port) setNotify(fn func()) {
	p.mu.Lock()
	p.notify = fn
	p.mu.Unlock()
}

// ConfigureEdges implements core.EdgeConfigurer
func (p *Port) ConfigureEdges(mask uint32, edge core.Edge) error {
	if mask == 0 {
		return core.ErrEmptyLineMask
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.is &^= mask
	switch edge {
	case core.EdgeFalling:
		p.ibe &^= mask
		p.iev &^= mask
	case core.EdgeRising:
		p.ibe &^= mask
		p.iev |= mask
	case core.EdgeBoth:
		p.ibe |= mask
	default:
		return core.ErrUnsupportedEdge
	}
	p.im |= mask
	return nil
}

// Press drives the pins in mask low, as a pressed negative-logic switch does.
// Pressing several pins in one call models a simultaneous press.
func (p *Port) Press(mask uint32) {
	p.transition(mask, false)
}

// Release lets the pins in mask return high
func (p *Port) Release(mask uint32) {
	p.transition(mask, true)
}

func (p *Port) transition(mask uint32, rising bool) {
	p.mu.Lock()
	edge := mask &^ p.is
	var sensed uint32
	if rising {
		sensed = edge & (p.ibe | p.iev)
	} else {
		sensed = edge & (p.ibe | ^p.iev)
	}
	p.ris |= sensed
	raise := p.ris&p.im != 0
	notify := p.notify
	p.mu.Unlock()

	if raise && notify != nil {
		notify()
	}
}

// PendingMask implements core.EdgeSource; it reads the masked status
func (p *Port) PendingMask() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ris & p.im
}

// RawStatus returns the latched edges including masked pins
func (p *Port) RawStatus() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ris
}

// ClearPending implements core.EdgeSource; writing 1 clears the latch
func (p *Port) ClearPending(mask uint32) {
	p.mu.Lock()
	p.ris &^= mask
	p.mu.Unlock()
}

// SyncAck implements core.EdgeSource
func (p *Port) SyncAck() {
	p.mu.Lock()
	p.readbacks++
	p.mu.Unlock()
}

// Readbacks returns how many acknowledges were read back
func (p *Port) Readbacks() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readbacks
}

// Unmasked returns the interrupt mask register
func (p *Port) Unmasked() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.im
}
