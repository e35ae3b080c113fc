//go:build rp2040

package main

import (
	"machine"
	"runtime/volatile"
	"unsafe"

	"dacwave/core"
)

// IO_BANK0 raw interrupt registers. Each GPIO has four bits per INTR word:
// level low, level high, edge low, edge high.
const (
	ioBank0Base  = 0x40014000
	ioBank0INTR0 = ioBank0Base + 0x0F0

	// IO_IRQ_BANK0 on the NVIC
	ioIRQBank0 = 13
)

func intrReg(pin uint32) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(ioBank0INTR0 + 4*(pin/8))))
}

// pinEdges adapts machine pin interrupts to core.EdgeSource. The machine
// package owns the IO_BANK0 vector and acknowledges the raw edge itself,
// so each callback latches a bit (1<<gpio) that the dispatcher consumes.
type pinEdges struct {
	pending volatile.Register32
	onEdge  func()
}

func newPinEdges(onEdge func()) *pinEdges {
	return &pinEdges{onEdge: onEdge}
}

// ConfigureEdges implements core.EdgeConfigurer
func (e *pinEdges) ConfigureEdges(mask uint32, edge core.Edge) error {
	if mask == 0 {
		return core.ErrEmptyLineMask
	}

	var change machine.PinChange
	switch edge {
	case core.EdgeFalling:
		change = machine.PinFalling
	case core.EdgeRising:
		change = machine.PinRising
	case core.EdgeBoth:
		change = machine.PinToggle
	default:
		return core.ErrUnsupportedEdge
	}

	for gpio := uint32(0); gpio < 30; gpio++ {
		if mask&(1<<gpio) == 0 {
			continue
		}
		pin := machine.Pin(gpio)
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		if err := pin.SetInterrupt(change, e.latch); err != nil {
			return err
		}
	}
	return nil
}

// latch runs in interrupt context
func (e *pinEdges) latch(pin machine.Pin) {
	e.pending.SetBits(1 << uint32(pin))
	if e.onEdge != nil {
		e.onEdge()
	}
}

// PendingMask implements core.EdgeSource
func (e *pinEdges) PendingMask() uint32 {
	return e.pending.Get()
}

// ClearPending implements core.EdgeSource. Raw edge bits are write-one-to-clear.
func (e *pinEdges) ClearPending(mask uint32) {
	e.pending.ClearBits(mask)
	for gpio := uint32(0); gpio < 30; gpio++ {
		if mask&(1<<gpio) == 0 {
			continue
		}
		intrReg(gpio).Set(0xC << (4 * (gpio % 8)))
	}
}

// SyncAck implements core.EdgeSource
func (e *pinEdges) SyncAck() {
	_ = intrReg(0).Get()
}
