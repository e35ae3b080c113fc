package protocol

import "errors"

// ErrUnknownMessage is returned by handlers for message IDs they do not decode
var ErrUnknownMessage = errors.New("unknown message id")

// MessageHandler receives each message of a frame. It must consume the
// message arguments from data; a non-nil error drops the rest of the frame.
type MessageHandler func(msgID uint16, data *[]byte) error

// ReceiverStats counts link events since the receiver was created
type ReceiverStats struct {
	Frames        uint32 // valid frames delivered
	CRCErrors     uint32 // frames rejected by checksum
	Resyncs       uint32 // times the receiver lost framing
	LostFrames    uint32 // frames skipped according to the sequence number
	HandlerErrors uint32 // frames whose payload failed to decode
}

// Receiver splits a byte stream into frames and feeds their messages to a
// handler. Not safe for concurrent use.
type Receiver struct {
	handler      MessageHandler
	synchronized bool
	haveSeq      bool
	nextSeq      uint8
	stats        ReceiverStats
}

// NewReceiver creates a receiver delivering messages to handler
func NewReceiver(handler MessageHandler) *Receiver {
	return &Receiver{
		handler:      handler,
		synchronized: true,
	}
}

// Stats returns a copy of the link counters
func (r *Receiver) Stats() ReceiverStats {
	return r.stats
}

// Receive consumes every complete frame in input. A partial frame is left in
// the buffer for the next call.
func (r *Receiver) Receive(input InputBuffer) {
	for {
		data := input.Data()
		if len(data) == 0 {
			return
		}

		if !r.synchronized {
			// Discard up to and including the next sync byte
			idx := -1
			for i, b := range data {
				if b == MessageValueSync {
					idx = i
					break
				}
			}
			if idx < 0 {
				input.Pop(len(data))
				return
			}
			input.Pop(idx + 1)
			r.synchronized = true
			continue
		}

		// Idle sync bytes between frames
		if data[0] == MessageValueSync {
			input.Pop(1)
			continue
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			r.resync(input)
			continue
		}
		if len(data) < MessageHeaderSize {
			return
		}
		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			r.resync(input)
			continue
		}
		if len(data) < msgLen {
			return
		}
		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			r.resync(input)
			continue
		}

		crc := CRC16(data[:msgLen-MessageTrailerCRC])
		got := uint16(data[msgLen-MessageTrailerCRC])<<8 | uint16(data[msgLen-MessageTrailerCRC+1])
		if crc != got {
			r.stats.CRCErrors++
			input.Pop(msgLen)
			continue
		}

		r.trackSeq(seq & MessageSeqMask)
		payload := make([]byte, msgLen-MessageLengthMin)
		copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])
		input.Pop(msgLen)

		r.stats.Frames++
		r.dispatch(payload)
	}
}

func (r *Receiver) resync(input InputBuffer) {
	r.stats.Resyncs++
	r.synchronized = false
	input.Pop(1)
}

func (r *Receiver) trackSeq(seq uint8) {
	if r.haveSeq && seq != r.nextSeq {
		r.stats.LostFrames += uint32((seq - r.nextSeq) & MessageSeqMask)
	}
	r.haveSeq = true
	r.nextSeq = (seq + 1) & MessageSeqMask
}

func (r *Receiver) dispatch(payload []byte) {
	for len(payload) > 0 {
		msgID, err := DecodeVLQUint(&payload)
		if err == nil && r.handler != nil {
			err = r.handler(uint16(msgID), &payload)
		}
		if err != nil {
			r.stats.HandlerErrors++
			return
		}
		if r.handler == nil {
			return
		}
	}
}
