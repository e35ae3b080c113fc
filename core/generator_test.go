package core

import "testing"

// recordingSink captures every sample written
type recordingSink struct {
	samples []Sample
}

func (r *recordingSink) WriteSample(s Sample) {
	r.samples = append(r.samples, s)
}

// countingTimer counts waits instead of blocking
type countingTimer struct {
	inits int
	waits []uint32
}

func (c *countingTimer) Init() { c.inits++ }

func (c *countingTimer) Wait(units uint32) {
	c.waits = append(c.waits, units)
}

func TestGeneratorSawtoothAfterPressA(t *testing.T) {
	mode := NewModeCell(ModeIdle)
	sink := &recordingSink{}
	timer := &countingTimer{}
	gen := NewGenerator(mode, sink, timer)

	src := &fakeEdgeSource{pending: buttonA}
	d, err := NewDispatcher(buttonA, buttonB, mode, src)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	d.Dispatch()

	for i := 0; i < 3; i++ {
		gen.Step()
	}

	want := []Sample{0, 0, 1}
	for i, s := range want {
		if sink.samples[i] != s {
			t.Errorf("sample %d: expected %d, got %d", i, s, sink.samples[i])
		}
	}
	if gen.Tick() != 3 {
		t.Errorf("Expected tick 3, got %d", gen.Tick())
	}
	if len(timer.waits) != 3 || timer.waits[0] != 1 {
		t.Errorf("Expected one 1-unit wait per step, got %v", timer.waits)
	}
}

func TestGeneratorSineQuarterPeriods(t *testing.T) {
	mode := NewModeCell(ModeSine)
	sink := &recordingSink{}
	gen := NewGenerator(mode, sink, NopTimer{})

	for i := 0; i < 46; i++ {
		gen.Step()
	}

	if s := sink.samples[15]; s < 120 {
		t.Errorf("Expected near-maximum sample at tick 15, got %d", s)
	}
	if s := sink.samples[45]; s > 5 {
		t.Errorf("Expected near-zero sample at tick 45, got %d", s)
	}
}

func TestGeneratorModeChangeMidCycle(t *testing.T) {
	mode := NewModeCell(ModeSawtooth)
	sink := &recordingSink{}
	gen := NewGenerator(mode, sink, NopTimer{})

	var changes []Mode
	var changeTicks []Tick
	gen.SetModeChangeHook(func(m Mode, tick Tick) {
		changes = append(changes, m)
		changeTicks = append(changeTicks, tick)
	})

	for i := 0; i < 100; i++ {
		gen.Step()
	}
	mode.Store(ModeSine)
	gen.Step()

	// The tick keeps running; the sine starts out of phase
	if got, want := sink.samples[100], Sine(100); got != want {
		t.Errorf("Expected sine sample %d at tick 100, got %d", want, got)
	}
	if len(changes) != 1 || changes[0] != ModeSine || changeTicks[0] != 100 {
		t.Errorf("Expected one change to sine at tick 100, got %v at %v", changes, changeTicks)
	}
}

func TestGeneratorTickWraps(t *testing.T) {
	gen := NewGenerator(NewModeCell(ModeSawtooth), &recordingSink{}, NopTimer{})
	for i := 0; i < TickModulus; i++ {
		gen.Step()
	}
	if gen.Tick() != 0 {
		t.Errorf("Expected tick to wrap to 0 after %d steps, got %d", TickModulus, gen.Tick())
	}
}

func TestGeneratorWaitUnits(t *testing.T) {
	timer := &countingTimer{}
	gen := NewGenerator(NewModeCell(ModeIdle), &recordingSink{}, timer)
	gen.SetWaitUnits(4)
	gen.Step()

	if len(timer.waits) != 1 || timer.waits[0] != 4 {
		t.Errorf("Expected a single 4-unit wait, got %v", timer.waits)
	}
}

func TestGeneratorRunStops(t *testing.T) {
	timer := &countingTimer{}
	sink := &recordingSink{}
	var gen *Generator
	gen = NewGenerator(NewModeCell(ModeIdle), SampleSinkFunc(func(s Sample) {
		sink.WriteSample(s)
		if len(sink.samples) == 10 {
			gen.Stop()
		}
	}), timer)

	gen.Run()

	if len(sink.samples) != 10 {
		t.Errorf("Expected Run to stop after 10 samples, got %d", len(sink.samples))
	}
	if timer.inits != 1 {
		t.Errorf("Expected timer initialized once, got %d", timer.inits)
	}
}
