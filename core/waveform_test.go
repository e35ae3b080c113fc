package core

import "testing"

func TestSawtoothRamp(t *testing.T) {
	for tick := Tick(0); tick < TickModulus; tick++ {
		want := Sample((tick % 256) / 2)
		if got := SampleFor(ModeSawtooth, tick); got != want {
			t.Fatalf("SampleFor(sawtooth, %d) = %d, expected %d", tick, got, want)
		}

		// Monotonic inside each 256-tick window, back to 0 at each boundary
		if tick%SawtoothPeriod == 0 {
			if got := SampleFor(ModeSawtooth, tick); got != 0 {
				t.Errorf("Expected window start %d to be 0, got %d", tick, got)
			}
			continue
		}
		if SampleFor(ModeSawtooth, tick) < SampleFor(ModeSawtooth, tick-1) {
			t.Errorf("Sawtooth decreased inside window at tick %d", tick)
		}
	}
}

func TestSawtoothRange(t *testing.T) {
	if got := Sawtooth(255); got != 127 {
		t.Errorf("Expected sawtooth peak 127, got %d", got)
	}
	if got := Sawtooth(256); got != 0 {
		t.Errorf("Expected sawtooth to reset at 256, got %d", got)
	}
}

func TestSinePeriodic(t *testing.T) {
	for tick := Tick(0); tick < TickModulus; tick++ {
		if a, b := SampleFor(ModeSine, tick), SampleFor(ModeSine, tick+SinePeriod); a != b {
			t.Fatalf("Sine not periodic at tick %d: %d != %d", tick, a, b)
		}
	}
}

func TestSineRange(t *testing.T) {
	for tick := Tick(0); tick < SinePeriod; tick++ {
		if s := Sine(tick); s > 127 {
			t.Errorf("Sine(%d) = %d exceeds headroom", tick, s)
		}
	}
}

func TestSineKeyPoints(t *testing.T) {
	tests := []struct {
		tick Tick
		want Sample
	}{
		{0, 64},   // round(127.5) = 128, halved
		{15, 127}, // quarter period, sin = 1
		{30, 64},  // half period
		{45, 0},   // three-quarter period, sin = -1
	}

	for _, tt := range tests {
		if got := SampleFor(ModeSine, tt.tick); got != tt.want {
			t.Errorf("SampleFor(sine, %d) = %d, expected %d", tt.tick, got, tt.want)
		}
	}
}

func TestIdleSilent(t *testing.T) {
	for tick := Tick(0); tick < TickModulus; tick++ {
		if got := SampleFor(ModeIdle, tick); got != 0 {
			t.Fatalf("SampleFor(idle, %d) = %d, expected 0", tick, got)
		}
	}
}

func TestUnknownModeSilent(t *testing.T) {
	if got := SampleFor(Mode(7), 100); got != 0 {
		t.Errorf("Expected unknown mode to produce 0, got %d", got)
	}
}

func TestStaircase(t *testing.T) {
	tests := []struct {
		tick Tick
		want Sample
	}{
		{0, 0x01},
		{59, 0x01},
		{60, 0x02},
		{179, 0x04},
		{420, 0x80},
		{479, 0x80},
		{480, 0x01},
		{3839, 0x80},
	}

	for _, tt := range tests {
		if got := Staircase(tt.tick); got != tt.want {
			t.Errorf("Staircase(%d) = %#x, expected %#x", tt.tick, got, tt.want)
		}
	}
}

func TestTickWrap(t *testing.T) {
	if got := Tick(TickModulus - 1).Next(); got != 0 {
		t.Errorf("Expected tick to wrap to 0, got %d", got)
	}
	if got := Tick(41).Next(); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	// Every waveform is at phase 0 where the counter wraps
	if TickModulus%SawtoothPeriod != 0 || TickModulus%SinePeriod != 0 || TickModulus%StaircasePeriod != 0 {
		t.Error("TickModulus is not a common multiple of the waveform periods")
	}
}
