//go:build rp2040 && !pcf8591

package main

import "dacwave/core"

func extraSinks() []core.SampleSink {
	return nil
}
