//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// usTimer implements core.TickTimer on the free-running 1MHz timer.
// One unit is quantum microseconds.
type usTimer struct {
	quantum uint32
	next    uint32
}

func newUSTimer(quantum uint32) *usTimer {
	return &usTimer{quantum: quantum}
}

// Init anchors the schedule at the current timer value
func (t *usTimer) Init() {
	t.next = timerRAWL.Get()
}

// Wait spins until the next deadline. Deadlines advance by a fixed step so
// the time spent rendering a sample does not stretch the period.
func (t *usTimer) Wait(units uint32) {
	t.next += units * t.quantum
	// Signed difference handles the 32-bit wrap every ~71 minutes
	for int32(timerRAWL.Get()-t.next) < 0 {
	}
}
