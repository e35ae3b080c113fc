package protocol

import (
	"bytes"
	"testing"
)

func TestVLQKnownEncodings(t *testing.T) {
	testCases := []struct {
		value   int32
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0x7F}},
		{95, []byte{0x5F}},
		{96, []byte{0x80, 0x60}},
		{-32, []byte{0x60}},
		{-33, []byte{0xFF, 0x5F}},
		{3839, []byte{0x9D, 0x7F}},
	}

	for _, tc := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, tc.value)
		if !bytes.Equal(output.Result(), tc.encoded) {
			t.Errorf("EncodeVLQInt(%d): expected %v, got %v", tc.value, tc.encoded, output.Result())
		}
	}
}

func TestVLQRoundTripInt(t *testing.T) {
	values := []int32{0, 1, -1, 127, -127, 128, -128, 1000, -1000, 65535, -65535, 1000000, -1000000, 1 << 30, -(1 << 30)}

	for _, expected := range values {
		output := NewScratchOutput()
		EncodeVLQInt(output, expected)

		data := output.Result()
		decoded, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}
		if decoded != expected {
			t.Errorf("Expected %d, got %d", expected, decoded)
		}
		if len(data) != 0 {
			t.Errorf("Decode of %d left %d bytes", expected, len(data))
		}
	}
}

func TestVLQRoundTripUint(t *testing.T) {
	for _, expected := range []uint32{0, 255, 3839, 0xFFFFFFFF} {
		output := NewScratchOutput()
		EncodeVLQUint(output, expected)

		data := output.Result()
		decoded, err := DecodeVLQUint(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}
		if decoded != expected {
			t.Errorf("Expected %d, got %d", expected, decoded)
		}
	}
}

func TestVLQBytesAndString(t *testing.T) {
	samples := []byte{0, 64, 127, 255}
	output := NewScratchOutput()
	EncodeVLQBytes(output, samples)
	EncodeVLQString(output, Version)

	data := output.Result()
	gotBytes, err := DecodeVLQBytes(&data)
	if err != nil {
		t.Fatalf("DecodeVLQBytes failed: %v", err)
	}
	if !bytes.Equal(gotBytes, samples) {
		t.Errorf("Expected %v, got %v", samples, gotBytes)
	}

	gotString, err := DecodeVLQString(&data)
	if err != nil {
		t.Fatalf("DecodeVLQString failed: %v", err)
	}
	if gotString != Version {
		t.Errorf("Expected %q, got %q", Version, gotString)
	}
}

func TestVLQTruncated(t *testing.T) {
	data := []byte{0x80}
	if _, err := DecodeVLQInt(&data); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}

	data = []byte{0x05, 0x01}
	if _, err := DecodeVLQBytes(&data); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall for short byte array, got %v", err)
	}

	data = []byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x01}
	if _, err := DecodeVLQInt(&data); err != ErrInvalidVLQ {
		t.Errorf("Expected ErrInvalidVLQ for overlong encoding, got %v", err)
	}
}
