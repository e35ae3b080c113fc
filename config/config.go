// Package config holds the board wiring and host tool settings
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"dacwave/core"
	"dacwave/protocol"
)

// Config describes the interrupt wiring of the buttons and the host side settings
type Config struct {
	IRQ         uint32 `json:"irq"`
	Priority    uint8  `json:"priority"`
	ButtonAMask uint32 `json:"button_a_mask"`
	ButtonBMask uint32 `json:"button_b_mask"`

	// TickMicros is the duration of one main loop wait unit
	TickMicros uint32 `json:"tick_us"`

	AudioSampleRate int `json:"audio_sample_rate"`
	TelemetryBlock  int `json:"telemetry_block"`

	Serial SerialConfig `json:"serial"`
}

// SerialConfig selects the port the probe reads telemetry from
type SerialConfig struct {
	Device        string `json:"device"`
	Baud          int    `json:"baud"`
	ReadTimeoutMS int    `json:"read_timeout_ms"`
}

// Lab wiring: GPIO Port F on IRQ 30, SW1 on PF4, SW2 on PF0
const (
	DefaultIRQ             = 30
	DefaultPriority        = 5
	DefaultButtonAMask     = 0x10
	DefaultButtonBMask     = 0x01
	DefaultTickMicros      = 1000
	DefaultAudioSampleRate = 44100
	DefaultTelemetryBlock  = 32
	DefaultBaud            = 115200
	DefaultReadTimeoutMS   = 100
)

// LoadConfig parses a JSON document over the lab defaults. Keys missing from
// the document keep their default value.
func LoadConfig(jsonData []byte) (*Config, error) {
	config := Default()

	if err := json.Unmarshal(jsonData, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyDefaults replaces explicit zeros in fields where zero is meaningless.
// irq and priority 0 are valid settings and are left alone.
func applyDefaults(config *Config) {
	if config.TickMicros == 0 {
		config.TickMicros = DefaultTickMicros
	}
	if config.AudioSampleRate == 0 {
		config.AudioSampleRate = DefaultAudioSampleRate
	}
	if config.TelemetryBlock == 0 {
		config.TelemetryBlock = DefaultTelemetryBlock
	}
	if config.Serial.Baud == 0 {
		config.Serial.Baud = DefaultBaud
	}
	if config.Serial.ReadTimeoutMS == 0 {
		config.Serial.ReadTimeoutMS = DefaultReadTimeoutMS
	}
}

// Default returns the lab wiring
func Default() *Config {
	return &Config{
		IRQ:             DefaultIRQ,
		Priority:        DefaultPriority,
		ButtonAMask:     DefaultButtonAMask,
		ButtonBMask:     DefaultButtonBMask,
		TickMicros:      DefaultTickMicros,
		AudioSampleRate: DefaultAudioSampleRate,
		TelemetryBlock:  DefaultTelemetryBlock,
		Serial: SerialConfig{
			Baud:          DefaultBaud,
			ReadTimeoutMS: DefaultReadTimeoutMS,
		},
	}
}

// Validate checks the wiring the same way the interrupt setup does
func (c *Config) Validate() error {
	if c.IRQ > core.MaxInterruptLine {
		return fmt.Errorf("config irq: %w", &core.InvalidLineError{Line: core.InterruptLine(c.IRQ), Lines: core.MaxInterruptLine + 1})
	}
	if c.Priority > core.MaxPriority {
		return fmt.Errorf("config priority: %w", &core.InvalidPriorityError{Line: core.InterruptLine(c.IRQ), Priority: core.Priority(c.Priority)})
	}
	if c.ButtonAMask == 0 || c.ButtonBMask == 0 {
		return fmt.Errorf("config buttons: %w", core.ErrEmptyLineMask)
	}
	if c.ButtonAMask&c.ButtonBMask != 0 {
		return fmt.Errorf("config buttons: %w", core.ErrOverlappingLines)
	}
	if c.TelemetryBlock < 1 || c.TelemetryBlock > protocol.SampleBlockMax {
		return fmt.Errorf("config telemetry_block %d: must be 1..%d", c.TelemetryBlock, protocol.SampleBlockMax)
	}
	if c.AudioSampleRate < 0 {
		return fmt.Errorf("config audio_sample_rate %d: must be positive", c.AudioSampleRate)
	}
	return nil
}

// EdgeInterrupt returns the interrupt setup for the two buttons
func (c *Config) EdgeInterrupt() core.EdgeInterruptConfig {
	return core.EdgeInterruptConfig{
		Line:     core.InterruptLine(c.IRQ),
		Priority: core.Priority(c.Priority),
		Mask:     c.ButtonAMask | c.ButtonBMask,
		Edge:     core.EdgeFalling,
	}
}

// Tick returns the duration of one wait unit
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickMicros) * time.Microsecond
}

// ReadTimeout returns the serial read timeout
func (s SerialConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutMS) * time.Millisecond
}
