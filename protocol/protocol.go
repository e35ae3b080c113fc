// Package protocol implements the telemetry link between the waveform firmware
// and the host tools. Frames use the Klipper message-block layout:
//
//	[len][seq][payload ...][crc16 hi][crc16 lo][0x7E]
//
// len counts the whole frame, seq is 0x10 | n with n incremented per frame,
// and the payload is a sequence of VLQ-encoded messages.
package protocol

// Version is reported in the identify message
const Version = "0.1.0"

// Frame layout constants
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageLengthMin
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10
	MessageSeqMask     = 0x0F

	// ScratchMax is the size of a ScratchOutput; several frames fit in one flush
	ScratchMax = 512
)

// Message IDs carried in a frame payload
const (
	MsgIdentify    = 0 // version=%s
	MsgModeReport  = 1 // mode=%c tick=%u
	MsgSampleBlock = 2 // tick=%u samples=%*s
)

// SampleBlockMax is the number of samples that fit one MsgSampleBlock frame
const SampleBlockMax = 48
