//go:build tinygo && cortexm

package core

import (
	"runtime/volatile"
	"unsafe"
)

// Cortex-M system control space addresses of the NVIC banks
const (
	nvicISERBase = 0xE000E100 // EN0, set-enable
	nvicICERBase = 0xE000E180 // DIS0, clear-enable
	nvicIPRBase  = 0xE000E400 // PRI0, priority
)

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// NewHardwareNVIC returns an NVIC addressing the memory-mapped registers of the running core.
// lines is the number of interrupts the device implements (139 on TM4C123, 32 on RP2040),
// priorityBits the implemented priority bits (PriorityBitsTM4C, PriorityBitsM0Plus).
func NewHardwareNVIC(lines int, priorityBits uint8) *NVIC {
	regs := &NVICRegisters{}
	for i := range regs.Enable {
		regs.Enable[i] = reg32(nvicISERBase + uintptr(i)*4)
		regs.Disable[i] = reg32(nvicICERBase + uintptr(i)*4)
	}
	for i := range regs.Priority {
		regs.Priority[i] = reg32(nvicIPRBase + uintptr(i)*4)
	}
	return NewNVIC(regs, lines, priorityBits)
}
