package protocol

import (
	"bytes"
	"testing"
)

type modeReport struct {
	mode uint8
	tick uint32
}

type collector struct {
	identify []string
	modes    []modeReport
	samples  []byte
	ticks    []uint32
}

func (c *collector) handle(msgID uint16, data *[]byte) error {
	switch msgID {
	case MsgIdentify:
		v, err := DecodeIdentify(data)
		if err != nil {
			return err
		}
		c.identify = append(c.identify, v)
	case MsgModeReport:
		mode, tick, err := DecodeModeReport(data)
		if err != nil {
			return err
		}
		c.modes = append(c.modes, modeReport{mode, tick})
	case MsgSampleBlock:
		tick, samples, err := DecodeSampleBlock(data)
		if err != nil {
			return err
		}
		c.ticks = append(c.ticks, tick)
		c.samples = append(c.samples, samples...)
	default:
		return ErrUnknownMessage
	}
	return nil
}

func TestTelemetryFrameLayout(t *testing.T) {
	out := NewScratchOutput()
	tel := NewTelemetry(out)

	if err := tel.SendModeReport(2, 15); err != nil {
		t.Fatalf("SendModeReport failed: %v", err)
	}

	frame := out.Result()
	// msgid, mode, tick each fit one VLQ byte
	if len(frame) != MessageLengthMin+3 {
		t.Fatalf("Expected frame length %d, got %d", MessageLengthMin+3, len(frame))
	}
	if int(frame[MessagePositionLen]) != len(frame) {
		t.Errorf("Length byte %d does not match frame size %d", frame[0], len(frame))
	}
	if frame[MessagePositionSeq] != MessageDest {
		t.Errorf("Expected first seq 0x%02X, got 0x%02X", MessageDest, frame[1])
	}
	if !bytes.Equal(frame[2:5], []byte{MsgModeReport, 2, 15}) {
		t.Errorf("Unexpected payload %v", frame[2:5])
	}
	crc := CRC16(frame[:len(frame)-3])
	if frame[len(frame)-3] != byte(crc>>8) || frame[len(frame)-2] != byte(crc) {
		t.Errorf("CRC trailer mismatch: expected 0x%04X", crc)
	}
	if frame[len(frame)-1] != MessageValueSync {
		t.Errorf("Expected sync byte, got 0x%02X", frame[len(frame)-1])
	}
}

func TestTelemetrySequenceWraps(t *testing.T) {
	out := NewScratchOutput()
	tel := NewTelemetry(out)

	for i := 0; i < 17; i++ {
		out.Reset()
		tel.SendModeReport(0, 0)
		want := byte(MessageDest | (i & MessageSeqMask))
		if got := out.Result()[MessagePositionSeq]; got != want {
			t.Errorf("Frame %d: expected seq 0x%02X, got 0x%02X", i, want, got)
		}
	}
	if tel.Frames() != 17 {
		t.Errorf("Expected 17 frames, got %d", tel.Frames())
	}
}

func TestTelemetryRoundTrip(t *testing.T) {
	out := NewScratchOutput()
	tel := NewTelemetry(out)

	samples := make([]byte, 60)
	for i := range samples {
		samples[i] = byte(i * 2)
	}

	tel.SendIdentify(Version)
	tel.SendModeReport(1, 3839)
	sent, err := tel.SendSampleBlock(100, samples)
	if err != nil {
		t.Fatalf("SendSampleBlock failed: %v", err)
	}
	if sent != SampleBlockMax {
		t.Errorf("Expected %d samples sent, got %d", SampleBlockMax, sent)
	}
	tel.SendSampleBlock(100+uint32(sent), samples[sent:])

	c := &collector{}
	rx := NewReceiver(c.handle)
	rx.Receive(NewSliceInputBuffer(out.Result()))

	if len(c.identify) != 1 || c.identify[0] != Version {
		t.Errorf("Expected identify %q, got %v", Version, c.identify)
	}
	if len(c.modes) != 1 || c.modes[0] != (modeReport{1, 3839}) {
		t.Errorf("Expected mode report {1 3839}, got %v", c.modes)
	}
	if !bytes.Equal(c.samples, samples) {
		t.Errorf("Sample stream mismatch: got %v", c.samples)
	}
	if len(c.ticks) != 2 || c.ticks[1] != 148 {
		t.Errorf("Expected block ticks [100 148], got %v", c.ticks)
	}

	stats := rx.Stats()
	if stats.Frames != 4 || stats.CRCErrors != 0 || stats.LostFrames != 0 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestTelemetryFrameTooLarge(t *testing.T) {
	out := NewScratchOutput()
	tel := NewTelemetry(out)

	long := string(make([]byte, MessagePayloadMax))
	if err := tel.SendIdentify(long); err != ErrFrameTooLarge {
		t.Errorf("Expected ErrFrameTooLarge, got %v", err)
	}
	if out.CurPosition() != 0 {
		t.Errorf("Rejected frame must not be written, got %d bytes", out.CurPosition())
	}
	if tel.Frames() != 0 {
		t.Errorf("Rejected frame must not advance the sequence")
	}
}

func TestReceiverPartialFrame(t *testing.T) {
	out := NewScratchOutput()
	NewTelemetry(out).SendModeReport(2, 7)
	frame := out.Result()

	c := &collector{}
	rx := NewReceiver(c.handle)
	fifo := NewFifoBuffer(128)

	fifo.Write(frame[:4])
	rx.Receive(fifo)
	if len(c.modes) != 0 {
		t.Fatal("Partial frame must not be delivered")
	}
	if fifo.Available() != 4 {
		t.Errorf("Partial frame must stay buffered, got %d bytes", fifo.Available())
	}

	fifo.Write(frame[4:])
	rx.Receive(fifo)
	if len(c.modes) != 1 || c.modes[0] != (modeReport{2, 7}) {
		t.Errorf("Expected mode report {2 7}, got %v", c.modes)
	}
	if !fifo.IsEmpty() {
		t.Errorf("Expected frame to be consumed, %d bytes left", fifo.Available())
	}
}

func TestReceiverResyncAfterGarbage(t *testing.T) {
	out := NewScratchOutput()
	out.Output([]byte{0x03, 0xAA, 0x55, MessageValueSync})
	NewTelemetry(out).SendModeReport(1, 42)

	c := &collector{}
	rx := NewReceiver(c.handle)
	rx.Receive(NewSliceInputBuffer(out.Result()))

	if len(c.modes) != 1 || c.modes[0] != (modeReport{1, 42}) {
		t.Errorf("Expected mode report after resync, got %v", c.modes)
	}
	if rx.Stats().Resyncs != 1 {
		t.Errorf("Expected 1 resync, got %d", rx.Stats().Resyncs)
	}
}

func TestReceiverCRCError(t *testing.T) {
	out := NewScratchOutput()
	tel := NewTelemetry(out)
	tel.SendModeReport(1, 1)
	first := out.CurPosition()
	tel.SendModeReport(2, 2)

	data := append([]byte(nil), out.Result()...)
	data[3] ^= 0x01 // corrupt the mode of the first frame

	c := &collector{}
	rx := NewReceiver(c.handle)
	rx.Receive(NewSliceInputBuffer(data))

	if len(c.modes) != 1 || c.modes[0] != (modeReport{2, 2}) {
		t.Errorf("Expected only the second report, got %v", c.modes)
	}
	stats := rx.Stats()
	if stats.CRCErrors != 1 {
		t.Errorf("Expected 1 CRC error, got %d", stats.CRCErrors)
	}
	if first == 0 {
		t.Error("First frame was not written")
	}
}

func TestReceiverCountsLostFrames(t *testing.T) {
	out := NewScratchOutput()
	tel := NewTelemetry(out)
	var frames [][]byte
	for i := 0; i < 5; i++ {
		start := out.CurPosition()
		tel.SendModeReport(0, uint32(i))
		frames = append(frames, append([]byte(nil), out.DataSince(start)...))
	}

	c := &collector{}
	rx := NewReceiver(c.handle)
	rx.Receive(NewSliceInputBuffer(frames[0]))
	rx.Receive(NewSliceInputBuffer(frames[3]))
	rx.Receive(NewSliceInputBuffer(frames[4]))

	stats := rx.Stats()
	if stats.LostFrames != 2 {
		t.Errorf("Expected 2 lost frames, got %d", stats.LostFrames)
	}
	if stats.Frames != 3 {
		t.Errorf("Expected 3 frames, got %d", stats.Frames)
	}
}

func TestReceiverUnknownMessage(t *testing.T) {
	out := NewScratchOutput()
	tel := NewTelemetry(out)
	tel.EncodeFrame(func(o OutputBuffer) {
		EncodeVLQUint(o, 99)
	})
	tel.SendModeReport(1, 5)

	c := &collector{}
	rx := NewReceiver(c.handle)
	rx.Receive(NewSliceInputBuffer(out.Result()))

	if rx.Stats().HandlerErrors != 1 {
		t.Errorf("Expected 1 handler error, got %d", rx.Stats().HandlerErrors)
	}
	if len(c.modes) != 1 {
		t.Errorf("Following frame should still be delivered, got %v", c.modes)
	}
}
