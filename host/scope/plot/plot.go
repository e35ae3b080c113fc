// Package plot maps DAC samples to screen coordinates and measures the trace
package plot

import "dacwave/core"

// FullScale is the largest value the DAC produces
const FullScale = 127

// Point is a screen position in pixels
type Point struct {
	X, Y float32
}

// Points spreads samples evenly across width, with 0 at the bottom edge and
// FullScale at the top. It appends to dst.
func Points(dst []Point, samples []core.Sample, width, height float32) []Point {
	if len(samples) == 0 {
		return dst
	}
	step := float32(0)
	if len(samples) > 1 {
		step = width / float32(len(samples)-1)
	}
	for i, s := range samples {
		v := float32(s)
		if v > FullScale {
			v = FullScale
		}
		dst = append(dst, Point{
			X: float32(i) * step,
			Y: height - v*height/FullScale,
		})
	}
	return dst
}

// Stats summarizes a window of samples
type Stats struct {
	Min, Max core.Sample
	Mean     float32
	// Period is the distance in samples between the last two rising
	// crossings of the midpoint, 0 when fewer than two were seen
	Period int
}

// Measure computes Stats over samples
func Measure(samples []core.Sample) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	st := Stats{Min: samples[0], Max: samples[0]}
	sum := 0
	for _, s := range samples {
		if s < st.Min {
			st.Min = s
		}
		if s > st.Max {
			st.Max = s
		}
		sum += int(s)
	}
	st.Mean = float32(sum) / float32(len(samples))

	if st.Max == st.Min {
		return st
	}
	mid := (int(st.Min) + int(st.Max) + 1) / 2
	prev, last := -1, -1
	for i := 1; i < len(samples); i++ {
		if int(samples[i-1]) < mid && int(samples[i]) >= mid {
			prev, last = last, i
		}
	}
	if prev >= 0 {
		st.Period = last - prev
	}
	return st
}
