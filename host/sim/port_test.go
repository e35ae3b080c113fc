package sim

import (
	"testing"

	"dacwave/core"
)

func TestPortResetSensesFallingButMasked(t *testing.T) {
	p := NewPort()
	p.Press(0x10)

	if p.RawStatus() != 0x10 {
		t.Errorf("Expected raw status 0x10, got 0x%x", p.RawStatus())
	}
	if p.PendingMask() != 0 {
		t.Errorf("Masked pin must not be pending, got 0x%x", p.PendingMask())
	}
}

func TestPortFallingEdgeOnly(t *testing.T) {
	p := NewPort()
	if err := p.ConfigureEdges(0x11, core.EdgeFalling); err != nil {
		t.Fatalf("ConfigureEdges failed: %v", err)
	}

	p.Release(0x10)
	if p.PendingMask() != 0 {
		t.Errorf("Rising edge must not latch, got 0x%x", p.PendingMask())
	}

	p.Press(0x10)
	if p.PendingMask() != 0x10 {
		t.Errorf("Expected 0x10 pending, got 0x%x", p.PendingMask())
	}

	p.ClearPending(0x10)
	p.SyncAck()
	if p.PendingMask() != 0 {
		t.Errorf("Expected nothing pending after clear, got 0x%x", p.PendingMask())
	}
	if p.Readbacks() != 1 {
		t.Errorf("Expected 1 readback, got %d", p.Readbacks())
	}
}

func TestPortEdgeModes(t *testing.T) {
	p := NewPort()
	p.ConfigureEdges(0x01, core.EdgeRising)
	p.ConfigureEdges(0x02, core.EdgeBoth)

	p.Press(0x03)
	if p.PendingMask() != 0x02 {
		t.Errorf("Falling edge: expected 0x02 pending, got 0x%x", p.PendingMask())
	}
	p.ClearPending(0x03)

	p.Release(0x03)
	if p.PendingMask() != 0x03 {
		t.Errorf("Rising edge: expected 0x03 pending, got 0x%x", p.PendingMask())
	}

	if err := p.ConfigureEdges(0x04, core.Edge(9)); err != core.ErrUnsupportedEdge {
		t.Errorf("Expected ErrUnsupportedEdge, got %v", err)
	}
	if err := p.ConfigureEdges(0, core.EdgeFalling); err != core.ErrEmptyLineMask {
		t.Errorf("Expected ErrEmptyLineMask, got %v", err)
	}
}

func TestPortNotifiesOnlyUnmaskedEdges(t *testing.T) {
	p := NewPort()
	requests := 0
	p.setNotify(func() { requests++ })

	p.Press(0x10)
	if requests != 0 {
		t.Errorf("Masked edge must not request an interrupt")
	}

	p.ConfigureEdges(0x10, core.EdgeFalling)
	p.ClearPending(0x10)
	p.Press(0x10)
	if requests != 1 {
		t.Errorf("Expected 1 request, got %d", requests)
	}
}

func TestPortWithDispatcher(t *testing.T) {
	p := NewPort()
	p.ConfigureEdges(0x11, core.EdgeFalling)

	mode := core.NewModeCell(core.ModeIdle)
	d, err := core.NewDispatcher(0x10, 0x01, mode, p)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}

	p.Press(0x11)
	if n := d.Dispatch(); n != 1 {
		t.Errorf("Expected 1 event, got %d", n)
	}
	if mode.Load() != core.ModeIdle {
		t.Errorf("Simultaneous press should select idle, got %v", mode.Load())
	}

	p.Press(0x01)
	d.Dispatch()
	if mode.Load() != core.ModeSine {
		t.Errorf("Expected sine, got %v", mode.Load())
	}
	if p.PendingMask() != 0 {
		t.Errorf("Expected all edges acknowledged, got 0x%x", p.PendingMask())
	}
}

func TestPortClearPendingTwice(t *testing.T) {
	p := NewPort()
	if err := p.ConfigureEdges(0x11, core.EdgeFalling); err != nil {
		t.Fatalf("ConfigureEdges failed: %v", err)
	}
	p.Press(0x11)

	p.ClearPending(0x10)
	p.ClearPending(0x10)

	if p.PendingMask() != 0x01 {
		t.Errorf("Expected B still pending after double clear of A, got 0x%x", p.PendingMask())
	}
	if p.RawStatus() != 0x01 {
		t.Errorf("Expected raw status 0x01, got 0x%x", p.RawStatus())
	}
	if p.Unmasked() != 0x11 {
		t.Errorf("Clearing must not touch the mask, got 0x%x", p.Unmasked())
	}
}
