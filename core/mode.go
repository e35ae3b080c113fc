package core

import "sync/atomic"

// Mode selects the waveform driven onto the DAC
type Mode uint32

const (
	ModeIdle     Mode = 0 // silence
	ModeSawtooth Mode = 1
	ModeSine     Mode = 2
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSawtooth:
		return "sawtooth"
	case ModeSine:
		return "sine"
	default:
		return "mode(" + utoa(uint32(m)) + ")"
	}
}

// Valid reports whether m is one of the defined variants
func (m Mode) Valid() bool {
	return m <= ModeSine
}

// ModeState is the cell shared between the dispatcher (only writer) and the
// main loop (only reader)
type ModeState interface {
	Load() Mode
	Store(m Mode)
}

// ModeCell is a single-word ModeState. Every access goes to memory so the main
// loop never keeps a stale copy across iterations, and a read never tears.
type ModeCell struct {
	v atomic.Uint32
}

// NewModeCell returns a cell holding the initial mode
func NewModeCell(initial Mode) *ModeCell {
	c := &ModeCell{}
	c.Store(initial)
	return c
}

// Load returns the current mode; a corrupted word reads as ModeIdle
func (c *ModeCell) Load() Mode {
	m := Mode(c.v.Load())
	if !m.Valid() {
		return ModeIdle
	}
	return m
}

// Store publishes a new mode
func (c *ModeCell) Store(m Mode) {
	c.v.Store(uint32(m))
}
