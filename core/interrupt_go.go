//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// irqLock serializes simulated interrupt handlers on regular Go, standing in for
// the CPU running one handler to completion
var irqLock sync.Mutex

// disableInterrupts enters the handler critical section (regular Go simulation)
func disableInterrupts() State {
	irqLock.Lock()
	return 0
}

// restoreInterrupts leaves the handler critical section (regular Go simulation)
func restoreInterrupts(state State) {
	irqLock.Unlock()
}

// enableGlobalInterrupts is a no-op on regular Go; admission is tracked by the NVIC model
func enableGlobalInterrupts() {}
