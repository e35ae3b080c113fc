// Package serial opens the link to a board streaming telemetry
package serial

import (
	"io"
	"time"

	"dacwave/config"
)

// Port is a byte stream to the board. Tests substitute pipes.
type Port interface {
	io.ReadWriteCloser

	// Flush discards bytes received but not yet read
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (USB CDC ignores this)
	Baud int

	// ReadTimeout bounds each Read so the probe can notice shutdown (0 = blocking)
	ReadTimeout time.Duration
}

// FromConfig converts the serial section of the tool configuration
func FromConfig(c config.SerialConfig) *Config {
	return &Config{
		Device:      c.Device,
		Baud:        c.Baud,
		ReadTimeout: c.ReadTimeout(),
	}
}
