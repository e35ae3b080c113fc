//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"dacwave/core"
)

// dacOrigin lets AddProgram place the program anywhere
const dacOrigin = -1

// pioDAC drives an eight-bit resistor ladder on eight consecutive GPIOs.
// The state machine autopulls one byte per word and latches it onto the
// pins, so the CPU only has to push each sample into the TX FIFO.
type pioDAC struct {
	pio  *rp2pio.PIO
	sm   rp2pio.StateMachine
	base machine.Pin
}

func newPIODAC(pio *rp2pio.PIO, smNum uint8, base machine.Pin) (*pioDAC, error) {
	d := &pioDAC{pio: pio, sm: pio.StateMachine(smNum), base: base}
	d.sm.TryClaim()

	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	program := []uint16{
		asm.Out(rp2pio.OutDestPins, 8).Encode(), // 0: out pins, 8 (autopull stalls on empty FIFO)
	}
	offset, err := pio.AddProgram(program, dacOrigin)
	if err != nil {
		return nil, err
	}

	for i := machine.Pin(0); i < 8; i++ {
		(base + i).Configure(machine.PinConfig{Mode: pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(base, 8)
	cfg.SetOutShift(true, true, 8)
	cfg.SetWrap(offset, offset)

	d.sm.Init(offset, cfg)
	d.sm.SetPindirsConsecutive(base, 8, true)
	d.sm.SetPinsConsecutive(base, 8, false)
	d.sm.SetEnabled(true)
	return d, nil
}

// WriteSample implements core.SampleSink
func (d *pioDAC) WriteSample(s core.Sample) {
	for d.sm.IsTxFIFOFull() {
	}
	d.sm.TxPut(uint32(s))
}
