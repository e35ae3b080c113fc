package core

import "errors"

// Edge selects which transitions of an input latch a pending event
type Edge uint8

const (
	EdgeFalling Edge = iota
	EdgeRising
	EdgeBoth
)

var (
	ErrEmptyLineMask    = errors.New("edge line mask is empty")
	ErrOverlappingLines = errors.New("edge line masks overlap")
	ErrUnsupportedEdge  = errors.New("edge mode not supported")
)

// EdgeSource is the abstract view of an edge-triggered input bank that the dispatcher uses.
// Platform-specific implementations handle the actual status/clear registers.
type EdgeSource interface {
	// PendingMask returns the masked interrupt status: one bit per pin with an
	// outstanding, unacknowledged edge
	PendingMask() uint32

	// ClearPending acknowledges the given pins. Clearing an already clear bit has no effect.
	ClearPending(mask uint32)

	// SyncAck reads the clear register back so the acknowledge has reached the
	// peripheral before the interrupted context resumes
	SyncAck()
}

// EdgeConfigurer holds the startup-only configuration hooks of an edge-triggered input bank
type EdgeConfigurer interface {
	// ConfigureEdges makes the pins in mask edge sensitive on the given edge and unmasks them
	ConfigureEdges(mask uint32, edge Edge) error

	// ClearPending acknowledges the given pins
	ClearPending(mask uint32)
}
