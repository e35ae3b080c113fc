package output

import (
	"sync/atomic"

	"dacwave/core"

	"tinygo.org/x/drivers"
)

// PCF8591 I2C constants
const (
	PCF8591Address   = 0x48 // A0-A2 tied low
	pcf8591DACEnable = 0x40 // control byte: analog output enable, channel 0
)

// PCF8591 writes samples to the analog output of a PCF8591 converter.
// Each sample is one transaction: control byte, then the DAC value.
type PCF8591 struct {
	bus  drivers.I2C
	addr uint16
	tx   [2]byte

	errors  atomic.Uint32
	lastErr atomic.Value
}

// NewPCF8591 creates a sink for the converter at addr on bus
func NewPCF8591(bus drivers.I2C, addr uint16) *PCF8591 {
	return &PCF8591{bus: bus, addr: addr}
}

// WriteSample implements core.SampleSink. Bus errors are counted, not returned.
func (d *PCF8591) WriteSample(s core.Sample) {
	d.tx[0] = pcf8591DACEnable
	d.tx[1] = byte(s)
	if err := d.bus.Tx(d.addr, d.tx[:], nil); err != nil {
		d.errors.Add(1)
		d.lastErr.Store(errBox{err})
	}
}

// Errors returns the number of failed transactions
func (d *PCF8591) Errors() uint32 {
	return d.errors.Load()
}

// LastError returns the most recent bus error, or nil
func (d *PCF8591) LastError() error {
	if b, ok := d.lastErr.Load().(errBox); ok {
		return b.err
	}
	return nil
}

// errBox gives atomic.Value a single concrete type for every error
type errBox struct {
	err error
}
