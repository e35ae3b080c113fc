package core

// InterruptLine identifies an interrupt source by its NVIC number
type InterruptLine uint32

// Priority is the 3-bit arbitration priority of an interrupt line (0-7).
// The value is stored as given; its meaning is defined by the device.
type Priority uint8

const (
	// MaxInterruptLine is the highest line number on the TM4C123GH6PM
	MaxInterruptLine = 138

	// MaxPriority is the largest value the 3-bit priority field can hold
	MaxPriority = 7

	// Implemented priority bits per core; they sit at the top of each byte lane
	PriorityBitsTM4C   = 3 // Cortex-M4F, TM4C123
	PriorityBitsM0Plus = 2 // Cortex-M0+, RP2040
)

// InterruptController is the abstract interrupt controller interface that core code uses.
// Lines are configured once during startup and not touched afterwards.
type InterruptController interface {
	// Enable marks a line active so that events on it request dispatch
	Enable(line InterruptLine) error

	// Disable masks a line again
	Disable(line InterruptLine) error

	// SetPriority sets the arbitration priority used when several lines are pending.
	// It does not affect events that were already dispatched.
	SetPriority(line InterruptLine, priority Priority) error

	// EnableGlobal admits all enabled lines. Nothing is dispatched before this call.
	EnableGlobal()
}

// PriorityRange is implemented by controllers with fewer than three priority bits
type PriorityRange interface {
	MaxPriority() Priority
}

// InvalidLineError reports an interrupt line outside the controller's range
type InvalidLineError struct {
	Line  InterruptLine
	Lines int // number of lines implemented by the controller
}

func (e *InvalidLineError) Error() string {
	return "invalid interrupt line " + utoa(uint32(e.Line)) +
		" (controller implements " + itoa(e.Lines) + " lines)"
}

// InvalidPriorityError reports a priority that does not fit the controller's field
type InvalidPriorityError struct {
	Line     InterruptLine
	Priority Priority
	Max      Priority // zero means MaxPriority
}

func (e *InvalidPriorityError) Error() string {
	max := e.Max
	if max == 0 {
		max = MaxPriority
	}
	return "invalid priority " + utoa(uint32(e.Priority)) +
		" for interrupt line " + utoa(uint32(e.Line)) + " (must be 0-" + utoa(uint32(max)) + ")"
}

// EdgeInterruptConfig describes one edge-triggered GPIO bank routed to one interrupt line
type EdgeInterruptConfig struct {
	Line     InterruptLine
	Priority Priority
	Mask     uint32 // monitored pins of the bank
	Edge     Edge
}

// InitEdgeInterrupts performs the startup sequence for an edge-triggered input bank:
// edge selection, stale flag clear, priority, line enable and finally global enable.
// It stops at the first error so nothing is admitted half-configured.
func InitEdgeInterrupts(ctrl InterruptController, edges EdgeConfigurer, cfg EdgeInterruptConfig) error {
	if cfg.Mask == 0 {
		return ErrEmptyLineMask
	}
	max := Priority(MaxPriority)
	if r, ok := ctrl.(PriorityRange); ok {
		max = r.MaxPriority()
	}
	if cfg.Priority > max {
		return &InvalidPriorityError{Line: cfg.Line, Priority: cfg.Priority, Max: max}
	}

	if err := edges.ConfigureEdges(cfg.Mask, cfg.Edge); err != nil {
		return err
	}

	// Clear any edge latched while the pins were being configured
	edges.ClearPending(cfg.Mask)

	if err := ctrl.SetPriority(cfg.Line, cfg.Priority); err != nil {
		return err
	}
	if err := ctrl.Enable(cfg.Line); err != nil {
		return err
	}

	ctrl.EnableGlobal()
	return nil
}
