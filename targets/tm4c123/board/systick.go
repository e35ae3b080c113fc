package board

import (
	"errors"

	"dacwave/core"
)

// SysTick control bits
const (
	sysTickEnable  = 1 << 0
	sysTickCoreClk = 1 << 2
	sysTickCount   = 1 << 16

	sysTickMaxReload = 0x00FFFFFF
)

// ErrTickRate is returned when one tick does not fit SysTick's 24-bit reload
// or is shorter than two core clocks
var ErrTickRate = errors.New("systick: tick rate out of range for the core clock")

// DefaultClockHz is the precision internal oscillator the core runs from
// out of reset
const DefaultClockHz = 16000000

// SysTickRegs is the SysTick register block
type SysTickRegs struct {
	Ctrl, Reload, Current core.Register32
}

// MapSysTick builds the SysTick register block
func MapSysTick(reg RegisterMapper) *SysTickRegs {
	return &SysTickRegs{
		Ctrl:    reg(SysTickCtrl),
		Reload:  reg(SysTickReload),
		Current: reg(SysTickCurrent),
	}
}

// SysTickTimer implements core.TickTimer by busy-waiting on the SysTick
// wrap flag. One unit is one reload period.
type SysTickTimer struct {
	regs   *SysTickRegs
	reload uint32
}

// NewSysTickTimer returns a timer whose unit lasts 1/unitsPerSecond seconds
func NewSysTickTimer(regs *SysTickRegs, clockHz, unitsPerSecond uint32) (*SysTickTimer, error) {
	if unitsPerSecond == 0 || unitsPerSecond > clockHz/2 {
		return nil, ErrTickRate
	}
	reload := clockHz/unitsPerSecond - 1
	if reload > sysTickMaxReload {
		return nil, ErrTickRate
	}
	return &SysTickTimer{regs: regs, reload: reload}, nil
}

// Reload returns the programmed reload value
func (t *SysTickTimer) Reload() uint32 {
	return t.reload
}

// Init starts SysTick free-running on the core clock with its interrupt off
func (t *SysTickTimer) Init() {
	t.regs.Ctrl.Set(0)
	t.regs.Reload.Set(t.reload)
	t.regs.Current.Set(0)
	t.regs.Ctrl.Set(sysTickEnable | sysTickCoreClk)
}

// Wait blocks for units reload periods. Reading CTRL clears the COUNT flag.
func (t *SysTickTimer) Wait(units uint32) {
	for ; units > 0; units-- {
		for t.regs.Ctrl.Get()&sysTickCount == 0 {
		}
	}
}
