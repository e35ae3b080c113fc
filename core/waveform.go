package core

import "math"

// Sample is the 8-bit value written to the DAC bus
type Sample uint8

// Tick is the main loop's discrete time base
type Tick uint32

// Waveform periods in ticks
const (
	SawtoothPeriod  = 256
	SinePeriod      = 60
	StaircaseStep   = 60
	StaircaseLevels = 8
	StaircasePeriod = StaircaseStep * StaircaseLevels // 480

	// TickModulus is a common multiple of every period so each waveform
	// completes whole cycles before the counter wraps:
	// 15 sawtooth, 64 sine and 8 staircase cycles.
	TickModulus = 3840
)

// Next advances the tick, wrapping at TickModulus
func (t Tick) Next() Tick {
	return (t + 1) % TickModulus
}

// sineTable holds one full sine cycle, already scaled and halved
var sineTable [SinePeriod]Sample

func init() {
	for i := range sineTable {
		y := math.Sin(2 * math.Pi * float64(i) / SinePeriod) // [-1, +1]
		full := math.Round((y + 1) / 2 * 255)                // [0, 255]
		sineTable[i] = headroom(uint8(full))
	}
}

// headroom halves an output level. The DAC stage clips above half scale, so the
// sawtooth and sine are limited to [0, 127].
func headroom(v uint8) Sample {
	return Sample(v / 2)
}

// SampleFor returns the DAC sample for mode at tick. Each waveform reduces the
// tick by its own period first, so any tick value is accepted.
func SampleFor(mode Mode, tick Tick) Sample {
	switch mode {
	case ModeSawtooth:
		return Sawtooth(tick)
	case ModeSine:
		return Sine(tick)
	default:
		return 0
	}
}

// Sawtooth is a linear ramp over SawtoothPeriod ticks
func Sawtooth(tick Tick) Sample {
	return headroom(uint8(tick % SawtoothPeriod))
}

// Sine completes one cycle every SinePeriod ticks
func Sine(tick Tick) Sample {
	return sineTable[tick%SinePeriod]
}

// Staircase steps a one-hot level through the eight DAC bits, one bit per
// StaircaseStep ticks. Used to check every resistor of the ladder.
func Staircase(tick Tick) Sample {
	return Sample(1 << ((tick % StaircasePeriod) / StaircaseStep))
}
