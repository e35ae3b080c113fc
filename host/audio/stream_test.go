package audio

import (
	"testing"

	"dacwave/core"
)

func TestStreamHoldsEachTick(t *testing.T) {
	next := core.Sample(0)
	s := NewStream(func() core.Sample {
		v := next
		next++
		return v
	}, 3)

	buf := make([]byte, 7)
	n, err := s.Read(buf)
	if err != nil || n != 7 {
		t.Fatalf("Expected 7 bytes, got %d (%v)", n, err)
	}

	want := []byte{0, 0, 0, 2, 2, 2, 4}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("Frame %d: expected %d, got %d", i, want[i], buf[i])
		}
	}

	// The held sample continues across reads
	s.Read(buf[:2])
	if buf[0] != 4 || buf[1] != 4 {
		t.Errorf("Expected held sample 4, got %v", buf[:2])
	}
}

func TestStreamFromGenerator(t *testing.T) {
	mode := core.NewModeCell(core.ModeSawtooth)
	gen := core.NewGenerator(mode, core.SampleSinkFunc(func(core.Sample) {}), core.NopTimer{})
	s := NewStream(gen.Step, 1)

	buf := make([]byte, 256)
	s.Read(buf)

	if buf[0] != 0 || buf[255] != 254 {
		t.Errorf("Expected full-range ramp 0..254, got %d..%d", buf[0], buf[255])
	}
	if gen.Tick() != 256 {
		t.Errorf("Expected one tick per frame, got tick %d", gen.Tick())
	}
}

func TestStreamMinimumHold(t *testing.T) {
	calls := 0
	s := NewStream(func() core.Sample { calls++; return 1 }, 0)
	s.Read(make([]byte, 4))
	if calls != 4 {
		t.Errorf("Expected 4 steps, got %d", calls)
	}
}
