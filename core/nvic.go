package core

import "sync/atomic"

// NVIC register bank geometry (TM4C123GH6PM: 139 lines)
const (
	NVICEnableRegs   = 5  // EN0-EN4 / DIS0-DIS4, 32 lines each
	NVICPriorityRegs = 35 // PRI0-PRI34, 4 lines each

	nvicPriorityLane = 0xFF // byte lane cleared before a priority write
)

// Register32 is a 32-bit peripheral register.
// TinyGo's *volatile.Register32 satisfies it, as does MemRegister.
type Register32 interface {
	Get() uint32
	Set(value uint32)
}

// NVICRegisters is the segmented register layout the NVIC arithmetic addresses
type NVICRegisters struct {
	Enable   [NVICEnableRegs]Register32   // set-enable (ISER / ENn)
	Disable  [NVICEnableRegs]Register32   // clear-enable (ICER / DISn)
	Priority [NVICPriorityRegs]Register32 // IPR / PRIn
}

// NVIC implements InterruptController on top of an NVICRegisters bank.
// Enable bits live in register line/32 at bit line%32; priorities live in
// register line/4 at bit offset (8-bits) + 8*(line%4), which is 5 on the
// TM4C123 and 6 on the RP2040.
type NVIC struct {
	regs   *NVICRegisters
	lines  int
	global atomic.Bool

	shift   uint32   // bit offset of the priority field inside a byte lane
	maxPrio Priority // largest value the field holds

	onAdmit func()
}

// NewNVIC creates an NVIC over regs implementing the given number of lines
// and priorityBits implemented priority bits (1-3; anything else means 3)
func NewNVIC(regs *NVICRegisters, lines int, priorityBits uint8) *NVIC {
	if lines > NVICEnableRegs*32 {
		lines = NVICEnableRegs * 32
	}
	if priorityBits == 0 || priorityBits > PriorityBitsTM4C {
		priorityBits = PriorityBitsTM4C
	}
	return &NVIC{
		regs:    regs,
		lines:   lines,
		shift:   8 - uint32(priorityBits),
		maxPrio: Priority(1)<<priorityBits - 1,
	}
}

// MaxPriority implements PriorityRange
func (n *NVIC) MaxPriority() Priority {
	return n.maxPrio
}

// SetAdmitHook registers fn to run after Enable or EnableGlobal admits more
// lines. A level-held request that was refused earlier is raised again from it.
// Call before the controller is shared.
func (n *NVIC) SetAdmitHook(fn func()) {
	n.onAdmit = fn
}

func (n *NVIC) admitted() {
	if n.onAdmit != nil {
		n.onAdmit()
	}
}

// Lines returns the number of implemented interrupt lines
func (n *NVIC) Lines() int {
	return n.lines
}

func (n *NVIC) checkLine(line InterruptLine) error {
	if int(line) >= n.lines {
		return &InvalidLineError{Line: line, Lines: n.lines}
	}
	return nil
}

// Enable sets the line's bit in its set-enable register
func (n *NVIC) Enable(line InterruptLine) error {
	if err := n.checkLine(line); err != nil {
		return err
	}
	reg := n.regs.Enable[line>>5]
	reg.Set(reg.Get() | 1<<(line&0x1F))
	n.admitted()
	return nil
}

// Disable writes the line's bit to its clear-enable register
func (n *NVIC) Disable(line InterruptLine) error {
	if err := n.checkLine(line); err != nil {
		return err
	}
	n.regs.Disable[line>>5].Set(1 << (line & 0x1F))
	return nil
}

// SetPriority clears the line's byte lane and writes the priority into its top bits.
// Values the core does not implement are rejected, never truncated.
func (n *NVIC) SetPriority(line InterruptLine, priority Priority) error {
	if err := n.checkLine(line); err != nil {
		return err
	}
	if priority > n.maxPrio {
		return &InvalidPriorityError{Line: line, Priority: priority, Max: n.maxPrio}
	}

	lane := uint32(line & 0x3)
	reg := n.regs.Priority[line>>2]
	v := reg.Get() &^ (nvicPriorityLane << (8 * lane))
	v |= uint32(priority) << (n.shift + 8*lane)
	reg.Set(v)
	return nil
}

// EnableGlobal unmasks interrupts at the CPU
func (n *NVIC) EnableGlobal() {
	n.global.Store(true)
	enableGlobalInterrupts()
	n.admitted()
}

// IsEnabled reports whether the line's enable bit is set
func (n *NVIC) IsEnabled(line InterruptLine) bool {
	if n.checkLine(line) != nil {
		return false
	}
	return n.regs.Enable[line>>5].Get()&(1<<(line&0x1F)) != 0
}

// Priority reads back the priority field of a line
func (n *NVIC) Priority(line InterruptLine) Priority {
	if n.checkLine(line) != nil {
		return 0
	}
	lane := uint32(line & 0x3)
	return Priority((n.regs.Priority[line>>2].Get() >> (n.shift + 8*lane)) & uint32(n.maxPrio))
}

// GlobalEnabled reports whether EnableGlobal has been called
func (n *NVIC) GlobalEnabled() bool {
	return n.global.Load()
}

// Admits reports whether an event on line would be dispatched right now
func (n *NVIC) Admits(line InterruptLine) bool {
	return n.GlobalEnabled() && n.IsEnabled(line)
}

// MemRegister is an in-memory Register32 used for hosted simulation
type MemRegister struct {
	v atomic.Uint32
}

func (r *MemRegister) Get() uint32 {
	return r.v.Load()
}

func (r *MemRegister) Set(value uint32) {
	r.v.Store(value)
}

// clearAlias models a write-one-to-clear register sharing state with its set register
type clearAlias struct {
	target *MemRegister
}

func (c clearAlias) Get() uint32 {
	return c.target.Get()
}

func (c clearAlias) Set(value uint32) {
	for {
		old := c.target.v.Load()
		if c.target.v.CompareAndSwap(old, old&^value) {
			return
		}
	}
}

// NewMemoryNVIC builds an NVIC backed by in-memory registers with the
// TM4C123's three priority bits
func NewMemoryNVIC(lines int) *NVIC {
	return NewMemoryNVICBits(lines, PriorityBitsTM4C)
}

// NewMemoryNVICBits is NewMemoryNVIC for a core with priorityBits priority bits
func NewMemoryNVICBits(lines int, priorityBits uint8) *NVIC {
	regs := &NVICRegisters{}
	for i := range regs.Enable {
		r := &MemRegister{}
		regs.Enable[i] = r
		regs.Disable[i] = clearAlias{target: r}
	}
	for i := range regs.Priority {
		regs.Priority[i] = &MemRegister{}
	}
	return NewNVIC(regs, lines, priorityBits)
}
