//go:build !tinygo

package core

import (
	"testing"
	"time"
)

func TestHostTimerDefaultsQuantum(t *testing.T) {
	timer := NewHostTimer(0)
	if timer.Quantum != time.Millisecond {
		t.Errorf("Expected 1ms quantum, got %v", timer.Quantum)
	}
}

func TestHostTimerWait(t *testing.T) {
	timer := NewHostTimer(2 * time.Millisecond)
	timer.Init()

	start := time.Now()
	timer.Wait(3)
	if elapsed := time.Since(start); elapsed < 6*time.Millisecond {
		t.Errorf("Expected at least 6ms, waited %v", elapsed)
	}

	start = time.Now()
	timer.Wait(0)
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Expected Wait(0) to return immediately, took %v", elapsed)
	}
}
