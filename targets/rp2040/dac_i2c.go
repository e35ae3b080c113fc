//go:build rp2040 && pcf8591

package main

import (
	"machine"

	"dacwave/core"
	"dacwave/output"
)

// extraSinks mirrors every sample to a PCF8591 on I2C0 (SDA=GP4, SCL=GP5)
func extraSinks() []core.SampleSink {
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	})
	if err != nil {
		core.DebugPrintln("[DAC] I2C0 configure failed: " + err.Error())
		return nil
	}
	return []core.SampleSink{output.NewPCF8591(machine.I2C0, output.PCF8591Address)}
}
