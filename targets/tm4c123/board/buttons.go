package board

import "dacwave/core"

// Buttons is the negative-logic switch bank on Port F. It is the edge
// source and configurer the dispatcher and the interrupt setup use.
type Buttons struct {
	port *GPIOPort
	mask uint32
}

// NewButtons makes the pins in mask pulled-up digital inputs. PF0 is locked
// at reset and is unlocked first.
func NewButtons(port *GPIOPort, mask uint32) *Buttons {
	port.Lock.Set(gpioLockKey)
	port.CR.Set(port.CR.Get() | mask)
	port.AMSEL.Set(port.AMSEL.Get() &^ mask)
	port.PCTL.Set(port.PCTL.Get() &^ pctlMask(mask))
	port.Dir.Set(port.Dir.Get() &^ mask)
	port.AFSEL.Set(port.AFSEL.Get() &^ mask)
	port.PUR.Set(port.PUR.Get() | mask)
	port.DEN.Set(port.DEN.Get() | mask)
	return &Buttons{port: port, mask: mask}
}

// ConfigureEdges implements core.EdgeConfigurer
func (b *Buttons) ConfigureEdges(mask uint32, edge core.Edge) error {
	if mask == 0 {
		return core.ErrEmptyLineMask
	}
	p := b.port

	p.IS.Set(p.IS.Get() &^ mask)
	switch edge {
	case core.EdgeFalling:
		p.IBE.Set(p.IBE.Get() &^ mask)
		p.IEV.Set(p.IEV.Get() &^ mask)
	case core.EdgeRising:
		p.IBE.Set(p.IBE.Get() &^ mask)
		p.IEV.Set(p.IEV.Get() | mask)
	case core.EdgeBoth:
		p.IBE.Set(p.IBE.Get() | mask)
	default:
		return core.ErrUnsupportedEdge
	}
	p.IM.Set(p.IM.Get() | mask)
	return nil
}

// PendingMask implements core.EdgeSource
func (b *Buttons) PendingMask() uint32 {
	return b.port.MIS.Get()
}

// ClearPending implements core.EdgeSource; ICR is write-one-to-clear
func (b *Buttons) ClearPending(mask uint32) {
	b.port.ICR.Set(mask)
}

// SyncAck implements core.EdgeSource
func (b *Buttons) SyncAck() {
	_ = b.port.ICR.Get()
}

// Pressed returns the buttons currently held down
func (b *Buttons) Pressed() uint32 {
	return ^b.port.Data.Get() & b.mask
}
