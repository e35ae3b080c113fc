//go:build tm4c123

package main

import (
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"

	"dacwave/core"
	"dacwave/targets/tm4c123/board"
)

// Tick rate of the main loop: one sample per millisecond
const ticksPerSecond = 1000

var (
	mode       = core.NewModeCell(core.ModeIdle)
	dispatcher *core.Dispatcher
)

func mmio(addr uintptr) core.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

func main() {
	core.SetDebugWriter(func(s string) { println(s) })

	sys := board.MapSysCtl(mmio)
	sys.EnablePorts(board.GatePortB | board.GatePortF)

	dac := board.NewDAC(board.MapPort(board.PortBBase, mmio))
	buttons := board.NewButtons(board.MapPort(board.PortFBase, mmio), board.SW1|board.SW2)

	var err error
	dispatcher, err = core.NewDispatcher(board.SW1, board.SW2, mode, buttons)
	if err != nil {
		halt(err)
	}

	// Place the handler in the vector table; the NVIC setup below admits it
	interrupt.New(board.GPIOPortFIRQ, handleGPIOPortF)

	nvic := core.NewHardwareNVIC(core.MaxInterruptLine+1, core.PriorityBitsTM4C)
	err = core.InitEdgeInterrupts(nvic, buttons, core.EdgeInterruptConfig{
		Line:     board.GPIOPortFIRQ,
		Priority: board.ButtonPriority,
		Mask:     board.SW1 | board.SW2,
		Edge:     core.EdgeFalling,
	})
	if err != nil {
		halt(err)
	}

	timer, err := board.NewSysTickTimer(board.MapSysTick(mmio), board.DefaultClockHz, ticksPerSecond)
	if err != nil {
		halt(err)
	}
	gen := core.NewGenerator(mode, dac, timer)
	gen.Run()
}

func handleGPIOPortF(interrupt.Interrupt) {
	dispatcher.Dispatch()
}

// halt parks the core after a startup failure with the DAC left untouched
func halt(err error) {
	println("startup failed:", err.Error())
	core.DumpTrace()
	for {
	}
}
