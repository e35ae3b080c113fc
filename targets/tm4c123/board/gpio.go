// Package board drives the TM4C123GH6PM peripherals used by the lab:
// the Port F switches, the Port B resistor-ladder DAC and SysTick.
// Registers are reached through core.Register32 so the logic runs against
// memory-backed fakes off target.
package board

import "dacwave/core"

// Peripheral base addresses (APB aperture)
const (
	PortBBase = 0x40005000
	PortFBase = 0x40025000

	SysCtlRCGCGPIO = 0x400FE608 // GPIO run mode clock gating
	SysCtlPRGPIO   = 0x400FEA08 // GPIO peripheral ready

	SysTickCtrl    = 0xE000E010
	SysTickReload  = 0xE000E014
	SysTickCurrent = 0xE000E018
)

// GPIO register offsets
const (
	offData  = 0x3FC // all eight bits unmasked
	offDir   = 0x400
	offIS    = 0x404
	offIBE   = 0x408
	offIEV   = 0x40C
	offIM    = 0x410
	offRIS   = 0x414
	offMIS   = 0x418
	offICR   = 0x41C
	offAFSEL = 0x420
	offPUR   = 0x510
	offDEN   = 0x51C
	offLock  = 0x520
	offCR    = 0x524
	offAMSEL = 0x528
	offPCTL  = 0x52C
)

// Clock gate bits in RCGCGPIO / PRGPIO
const (
	GatePortB = 1 << 1
	GatePortF = 1 << 5
)

// Lab wiring
const (
	SW1 = 0x10 // PF4, button A
	SW2 = 0x01 // PF0, button B

	GPIOPortFIRQ   = 30
	ButtonPriority = 5

	gpioLockKey = 0x4C4F434B
)

// RegisterMapper returns the register at a physical address
type RegisterMapper func(addr uintptr) core.Register32

// GPIOPort is the register block of one GPIO port
type GPIOPort struct {
	Data, Dir                    core.Register32
	IS, IBE, IEV, IM             core.Register32
	RIS, MIS, ICR                core.Register32
	AFSEL, PUR, DEN, AMSEL, PCTL core.Register32
	Lock, CR                     core.Register32
}

// MapPort builds the register block of the port at base
func MapPort(base uintptr, reg RegisterMapper) *GPIOPort {
	return &GPIOPort{
		Data:  reg(base + offData),
		Dir:   reg(base + offDir),
		IS:    reg(base + offIS),
		IBE:   reg(base + offIBE),
		IEV:   reg(base + offIEV),
		IM:    reg(base + offIM),
		RIS:   reg(base + offRIS),
		MIS:   reg(base + offMIS),
		ICR:   reg(base + offICR),
		AFSEL: reg(base + offAFSEL),
		PUR:   reg(base + offPUR),
		DEN:   reg(base + offDEN),
		AMSEL: reg(base + offAMSEL),
		PCTL:  reg(base + offPCTL),
		Lock:  reg(base + offLock),
		CR:    reg(base + offCR),
	}
}

// pctlMask covers the 4-bit function select fields of the pins in mask
func pctlMask(mask uint32) uint32 {
	var m uint32
	for pin := 0; pin < 8; pin++ {
		if mask&(1<<pin) != 0 {
			m |= 0xF << (4 * pin)
		}
	}
	return m
}

// SysCtl gates the GPIO port clocks
type SysCtl struct {
	RCGCGPIO, PRGPIO core.Register32
}

// MapSysCtl builds the system control registers used here
func MapSysCtl(reg RegisterMapper) *SysCtl {
	return &SysCtl{
		RCGCGPIO: reg(SysCtlRCGCGPIO),
		PRGPIO:   reg(SysCtlPRGPIO),
	}
}

// EnablePorts turns on the clocks of the ports in gates and waits until they are ready
func (s *SysCtl) EnablePorts(gates uint32) {
	s.RCGCGPIO.Set(s.RCGCGPIO.Get() | gates)
	for s.PRGPIO.Get()&gates != gates {
	}
}

// DAC is the eight-bit resistor ladder on PB0-PB7
type DAC struct {
	port *GPIOPort
}

// NewDAC makes PB0-PB7 plain digital outputs
func NewDAC(port *GPIOPort) *DAC {
	port.AMSEL.Set(port.AMSEL.Get() &^ 0xFF)
	port.PCTL.Set(port.PCTL.Get() &^ pctlMask(0xFF))
	port.Dir.Set(port.Dir.Get() | 0xFF)
	port.AFSEL.Set(port.AFSEL.Get() &^ 0xFF)
	port.DEN.Set(port.DEN.Get() | 0xFF)
	return &DAC{port: port}
}

// WriteSample implements core.SampleSink
func (d *DAC) WriteSample(s core.Sample) {
	d.port.Data.Set(uint32(s))
}
