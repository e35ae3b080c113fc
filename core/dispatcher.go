package core

// Dispatcher is the edge interrupt handler. It turns the pending flags of two
// monitored buttons into mode transitions and acknowledges them.
//
//	A and B pending -> ModeIdle,     clear A|B
//	only A pending  -> ModeSawtooth, clear A
//	only B pending  -> ModeSine,     clear B
//
// Any other pending bit is acknowledged without a mode change.
type Dispatcher struct {
	lineA uint32
	lineB uint32
	mode  ModeState
	src   EdgeSource

	serviced uint32 // total events serviced, for diagnostics
}

// NewDispatcher creates a dispatcher for buttons A and B of src.
// Each mask must be non-zero and the two must not overlap.
func NewDispatcher(lineA, lineB uint32, mode ModeState, src EdgeSource) (*Dispatcher, error) {
	if lineA == 0 || lineB == 0 {
		return nil, ErrEmptyLineMask
	}
	if lineA&lineB != 0 {
		return nil, ErrOverlappingLines
	}
	return &Dispatcher{
		lineA: lineA,
		lineB: lineB,
		mode:  mode,
		src:   src,
	}, nil
}

// Lines returns the combined mask of both monitored buttons
func (d *Dispatcher) Lines() uint32 {
	return d.lineA | d.lineB
}

// Serviced returns the number of events handled since creation
func (d *Dispatcher) Serviced() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.serviced
}

// Dispatch services the edge source until nothing is pending and returns the
// number of events handled. Edges that arrive while an earlier one is being
// acknowledged are picked up by the re-poll, so back-to-back presses are not lost.
// Dispatch runs to completion with interrupts masked.
func (d *Dispatcher) Dispatch() int {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	handled := 0
	for {
		pending := d.src.PendingMask()
		if pending == 0 {
			break
		}

		var ack uint32
		var evt uint8
		hasA := pending&d.lineA != 0
		hasB := pending&d.lineB != 0

		switch {
		case hasA && hasB:
			d.mode.Store(ModeIdle)
			ack = d.lineA | d.lineB
			evt = EvtEdgeBoth
		case hasA:
			d.mode.Store(ModeSawtooth)
			ack = d.lineA
			evt = EvtEdgeA
		case hasB:
			d.mode.Store(ModeSine)
			ack = d.lineB
			evt = EvtEdgeB
		default:
			// Not one of ours; acknowledge it so the re-poll terminates
			ack = pending
			evt = EvtEdgeUnknown
		}

		d.src.ClearPending(ack)
		d.src.SyncAck()

		recordTrace(TraceEvent{
			EventType: evt,
			Mode:      d.mode.Load(),
			Pending:   pending,
			Cleared:   ack,
		})
		if asyncDebugActive() {
			DebugAsync("[IRQ] pending=" + hex32(pending) + " cleared=" + hex32(ack) +
				" mode=" + d.mode.Load().String())
		}
		handled++
	}

	d.serviced += uint32(handled)
	return handled
}
