package protocol

import "errors"

// ErrFrameTooLarge is returned when a message does not fit one frame
var ErrFrameTooLarge = errors.New("message exceeds frame payload")

// Telemetry encodes frames into an OutputBuffer. It is used from a single
// goroutine; the sequence number advances once per frame.
type Telemetry struct {
	output  OutputBuffer
	payload ScratchOutput
	seq     uint8
	frames  uint32
}

// NewTelemetry creates an encoder writing frames to output
func NewTelemetry(output OutputBuffer) *Telemetry {
	return &Telemetry{output: output}
}

// Frames returns the number of frames encoded
func (t *Telemetry) Frames() uint32 {
	return t.frames
}

// EncodeFrame wraps the messages written by body into one frame
func (t *Telemetry) EncodeFrame(body func(OutputBuffer)) error {
	t.payload.Reset()
	body(&t.payload)
	payload := t.payload.Result()
	if len(payload) > MessagePayloadMax {
		return ErrFrameTooLarge
	}

	start := t.output.CurPosition()
	t.output.Output([]byte{byte(len(payload) + MessageLengthMin), MessageDest | t.seq})
	t.output.Output(payload)

	crc := CRC16(t.output.DataSince(start))
	t.output.Output([]byte{byte(crc >> 8), byte(crc), MessageValueSync})

	t.seq = (t.seq + 1) & MessageSeqMask
	t.frames++
	return nil
}

// SendIdentify reports the firmware version
func (t *Telemetry) SendIdentify(version string) error {
	return t.EncodeFrame(func(out OutputBuffer) {
		EncodeVLQUint(out, MsgIdentify)
		EncodeVLQString(out, version)
	})
}

// SendModeReport reports a mode change observed at tick
func (t *Telemetry) SendModeReport(mode uint8, tick uint32) error {
	return t.EncodeFrame(func(out OutputBuffer) {
		EncodeVLQUint(out, MsgModeReport)
		EncodeVLQUint(out, uint32(mode))
		EncodeVLQUint(out, tick)
	})
}

// SendSampleBlock sends up to SampleBlockMax samples, the first produced at
// tick, and returns how many were sent
func (t *Telemetry) SendSampleBlock(tick uint32, samples []byte) (int, error) {
	if len(samples) > SampleBlockMax {
		samples = samples[:SampleBlockMax]
	}
	err := t.EncodeFrame(func(out OutputBuffer) {
		EncodeVLQUint(out, MsgSampleBlock)
		EncodeVLQUint(out, tick)
		EncodeVLQBytes(out, samples)
	})
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}

// DecodeIdentify parses the arguments of a MsgIdentify
func DecodeIdentify(data *[]byte) (string, error) {
	return DecodeVLQString(data)
}

// DecodeModeReport parses the arguments of a MsgModeReport
func DecodeModeReport(data *[]byte) (mode uint8, tick uint32, err error) {
	m, err := DecodeVLQUint(data)
	if err != nil {
		return 0, 0, err
	}
	tick, err = DecodeVLQUint(data)
	if err != nil {
		return 0, 0, err
	}
	return uint8(m), tick, nil
}

// DecodeSampleBlock parses the arguments of a MsgSampleBlock.
// The returned samples alias data.
func DecodeSampleBlock(data *[]byte) (tick uint32, samples []byte, err error) {
	tick, err = DecodeVLQUint(data)
	if err != nil {
		return 0, nil, err
	}
	samples, err = DecodeVLQBytes(data)
	if err != nil {
		return 0, nil, err
	}
	return tick, samples, nil
}
