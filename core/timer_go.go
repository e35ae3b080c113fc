//go:build !tinygo

package core

import "time"

// HostTimer is the regular Go TickTimer. There is no cycle counter to spin on,
// so each wait is a sleep of units*Quantum.
type HostTimer struct {
	Quantum time.Duration
}

// NewHostTimer creates a timer with the given quantum (one waveform tick)
func NewHostTimer(quantum time.Duration) *HostTimer {
	if quantum <= 0 {
		quantum = time.Millisecond
	}
	return &HostTimer{Quantum: quantum}
}

// Init is a no-op on regular Go
func (t *HostTimer) Init() {}

// Wait sleeps for units quanta
func (t *HostTimer) Wait(units uint32) {
	if units == 0 {
		return
	}
	time.Sleep(time.Duration(units) * t.Quantum)
}
