package output

import (
	"sync"

	"dacwave/core"
)

// Ring keeps the most recent samples for display. Writers and readers may
// run on different goroutines.
type Ring struct {
	mu    sync.Mutex
	buf   []core.Sample
	head  int // next write position
	count int
	total uint64
}

// NewRing creates a ring holding size samples
func NewRing(size int) *Ring {
	if size < 1 {
		size = 1
	}
	return &Ring{buf: make([]core.Sample, size)}
}

// WriteSample implements core.SampleSink
func (r *Ring) WriteSample(s core.Sample) {
	r.mu.Lock()
	r.put(s)
	r.mu.Unlock()
}

// Write appends raw sample bytes, as received in a telemetry block
func (r *Ring) Write(samples []byte) (int, error) {
	r.mu.Lock()
	for _, s := range samples {
		r.put(core.Sample(s))
	}
	r.mu.Unlock()
	return len(samples), nil
}

func (r *Ring) put(s core.Sample) {
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.total++
}

// Snapshot appends the held samples to dst, oldest first
func (r *Ring) Snapshot(dst []core.Sample) []core.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.head - r.count
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < r.count; i++ {
		dst = append(dst, r.buf[(start+i)%len(r.buf)])
	}
	return dst
}

// Len returns the number of samples held
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the ring size
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Total returns the number of samples ever written
func (r *Ring) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
