package core

// TickTimer paces the main loop. Wait blocks the calling context for the
// given number of time units; it never yields to other logical tasks and
// cannot be cancelled.
type TickTimer interface {
	// Init starts the underlying counter
	Init()

	// Wait busy-waits for units time quanta
	Wait(units uint32)
}

// NopTimer returns immediately. Tests and externally clocked loops (for
// example an audio device pulling samples) use it.
type NopTimer struct{}

func (NopTimer) Init()       {}
func (NopTimer) Wait(uint32) {}
