//go:build !dacdebug

package core

// debugStaircase replaces the selected waveform with the DAC ladder check
// when the firmware is built with -tags dacdebug
const debugStaircase = false
