package core

// SampleSink drives the DAC. WriteSample is side-effecting and idempotent for
// a repeated value; it has no error return, implementations count failures.
type SampleSink interface {
	WriteSample(s Sample)
}

// SampleSinkFunc adapts a function to SampleSink
type SampleSinkFunc func(s Sample)

func (f SampleSinkFunc) WriteSample(s Sample) {
	f(s)
}
