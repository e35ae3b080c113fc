package core

import "sync/atomic"

// ModeChangeHook is called from the main loop when it observes a new mode
type ModeChangeHook func(mode Mode, tick Tick)

// Generator is the main loop: each Step reads the mode, writes the sample for
// the current tick, advances the tick and waits one time unit. A mode change
// takes effect at the next Step, mid-cycle; the partial waveform is expected.
type Generator struct {
	mode  ModeState
	sink  SampleSink
	timer TickTimer

	tick      Tick
	waitUnits uint32
	lastMode  Mode
	onChange  ModeChangeHook

	stopped atomic.Bool
}

// NewGenerator creates a generator starting at tick 0 in whatever mode the cell holds
func NewGenerator(mode ModeState, sink SampleSink, timer TickTimer) *Generator {
	return &Generator{
		mode:      mode,
		sink:      sink,
		timer:     timer,
		waitUnits: 1,
		lastMode:  mode.Load(),
	}
}

// SetWaitUnits sets how many timer units each Step waits (default 1)
func (g *Generator) SetWaitUnits(units uint32) {
	g.waitUnits = units
}

// SetModeChangeHook registers a callback for observed mode changes
func (g *Generator) SetModeChangeHook(hook ModeChangeHook) {
	g.onChange = hook
}

// Tick returns the tick the next Step will render
func (g *Generator) Tick() Tick {
	return g.tick
}

// Step runs one loop iteration and returns the sample written
func (g *Generator) Step() Sample {
	mode := g.mode.Load()
	if mode != g.lastMode {
		g.lastMode = mode
		g.modeChanged(mode)
	}

	var s Sample
	if debugStaircase {
		s = Staircase(g.tick)
	} else {
		s = SampleFor(mode, g.tick)
	}

	g.sink.WriteSample(s)
	g.tick = g.tick.Next()
	g.timer.Wait(g.waitUnits)
	return s
}

func (g *Generator) modeChanged(mode Mode) {
	RecordTrace(TraceEvent{EventType: EvtModeSeen, Mode: mode, Tick: g.tick})
	if debugEnabled {
		DebugPrintln("mode " + mode.String() + " at tick " + utoa(uint32(g.tick)))
	}
	if g.onChange != nil {
		g.onChange(mode, g.tick)
	}
}

// Run loops until Stop is called. Firmware never stops.
func (g *Generator) Run() {
	g.timer.Init()
	for !g.stopped.Load() {
		g.Step()
	}
}

// Stop makes Run return after the current iteration
func (g *Generator) Stop() {
	g.stopped.Store(true)
}
