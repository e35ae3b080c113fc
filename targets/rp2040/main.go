//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"dacwave/core"
	"dacwave/output"
)

// Board wiring
const (
	buttonA = machine.GP14
	buttonB = machine.GP15
	dacBase = machine.GP6 // GP6-GP13, LSB first

	buttonPriority = 1
	tickMicros     = 1000
	telemetryBlock = 32
)

var (
	mode       = core.NewModeCell(core.ModeIdle)
	dispatcher *core.Dispatcher
)

func main() {
	// Disable the watchdog so a previous reset cause does not carry over
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	core.SetDebugWriter(func(s string) { println(s) })

	dac, err := newPIODAC(rp2pio.PIO0, 0, dacBase)
	if err != nil {
		halt(err)
	}

	telemetry := output.NewFrameSink(machine.Serial, telemetryBlock)
	telemetry.Identify()

	sinks := output.Tee{dac, telemetry}
	sinks = append(sinks, extraSinks()...)

	maskA := uint32(1) << uint32(buttonA)
	maskB := uint32(1) << uint32(buttonB)
	edges := newPinEdges(handleEdge)

	dispatcher, err = core.NewDispatcher(maskA, maskB, mode, edges)
	if err != nil {
		halt(err)
	}

	// Only the upper two priority bits exist on the M0+ core
	nvic := core.NewHardwareNVIC(32, core.PriorityBitsM0Plus)
	err = core.InitEdgeInterrupts(nvic, edges, core.EdgeInterruptConfig{
		Line:     ioIRQBank0,
		Priority: buttonPriority,
		Mask:     maskA | maskB,
		Edge:     core.EdgeFalling,
	})
	if err != nil {
		halt(err)
	}

	gen := core.NewGenerator(mode, sinks, newUSTimer(tickMicros))
	gen.SetModeChangeHook(telemetry.ReportMode)
	gen.Run()
}

// handleEdge runs in interrupt context after a button edge was latched
func handleEdge() {
	if dispatcher != nil {
		dispatcher.Dispatch()
	}
}

// halt parks the core after a startup failure
func halt(err error) {
	println("startup failed:", err.Error())
	core.DumpTrace()
	for {
	}
}
