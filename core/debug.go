package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures one dispatcher or main-loop event for post-mortem analysis
type TraceEvent struct {
	EventType uint8  // Event type code
	Mode      Mode   // Mode after the event
	Pending   uint32 // Pending mask seen by the dispatcher
	Cleared   uint32 // Bits acknowledged
	Tick      Tick   // Main loop tick (main-loop events only)
}

// Event type codes
const (
	EvtEdgeBoth    = 1 // both buttons pending -> idle
	EvtEdgeA       = 2 // button A -> sawtooth
	EvtEdgeB       = 3 // button B -> sine
	EvtEdgeUnknown = 4 // unmonitored pin acknowledged
	EvtModeSeen    = 5 // main loop picked up a new mode
)

const (
	TraceRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Trace ring buffer (non-blocking, for post-mortem)
	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8 // Next write position

	// Async debug output channel and worker exit signal
	debugChan chan string
	debugDone chan struct{}
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, stderr, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter; later writer changes do not reach it
func InitAsyncDebug() {
	if debugChan != nil {
		return
	}
	debugChan = make(chan string, 16) // Buffer 16 messages
	debugDone = make(chan struct{})
	go debugOutputWorker(debugChan, debugDone, debugPrintln)
}

// StopAsyncDebug writes out the queued messages and stops the worker
func StopAsyncDebug() {
	if debugChan == nil {
		return
	}
	close(debugChan)
	<-debugDone
	debugChan = nil
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker(msgs <-chan string, done chan<- struct{}, writer DebugWriter) {
	defer close(done)
	for msg := range msgs {
		if writer != nil {
			writer(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// asyncDebugActive reports whether DebugAsync would queue; callers in
// interrupt context check it before formatting a message
func asyncDebugActive() bool {
	return debugEnabled && debugChan != nil
}

// DebugAsync queues a debug message for async output (non-blocking)
// Safe to call from interrupt context; drops the message if the channel is full
func DebugAsync(msg string) {
	if !asyncDebugActive() {
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// RecordTrace captures an event in the ring buffer from outside interrupt context
func RecordTrace(evt TraceEvent) {
	state := disableInterrupts()
	recordTrace(evt)
	restoreInterrupts(state)
}

// recordTrace writes the ring; the caller already runs with interrupts masked
func recordTrace(evt TraceEvent) {
	idx := traceRingHead
	traceRing[idx] = evt
	traceRingHead = (idx + 1) % TraceRingSize
}

// TraceEvents returns the recorded events, oldest first
func TraceEvents() []TraceEvent {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	events := make([]TraceEvent, 0, TraceRingSize)
	start := traceRingHead
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := traceRing[(start+i)%TraceRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpTrace outputs the trace ring buffer (call on shutdown/error)
func DumpTrace() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TRACE] === Trace Ring Dump ===")
	for _, evt := range TraceEvents() {
		var name string
		switch evt.EventType {
		case EvtEdgeBoth:
			name = "EDGE_BOTH"
		case EvtEdgeA:
			name = "EDGE_A"
		case EvtEdgeB:
			name = "EDGE_B"
		case EvtEdgeUnknown:
			name = "EDGE_UNKNOWN"
		case EvtModeSeen:
			name = "MODE_SEEN"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[TRACE] " + name +
			" mode=" + evt.Mode.String() +
			" pending=" + hex32(evt.Pending) +
			" cleared=" + hex32(evt.Cleared) +
			" tick=" + utoa(uint32(evt.Tick)))
	}
	debugPrintln("[TRACE] === End Dump ===")
}

// ClearTrace clears the trace buffer
func ClearTrace() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
}
