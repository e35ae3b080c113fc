package output

import "dacwave/core"

// Tee fans each sample out to several sinks in order
type Tee []core.SampleSink

// WriteSample implements core.SampleSink
func (t Tee) WriteSample(s core.Sample) {
	for _, sink := range t {
		sink.WriteSample(s)
	}
}
