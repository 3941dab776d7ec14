package dfplayer

import "errors"

var (
	// ErrFrame is returned for a frame with a bad start, version, length or end byte
	ErrFrame = errors.New("dfplayer: malformed frame")

	// ErrChecksum is returned for a frame whose checksum does not match
	ErrChecksum = errors.New("dfplayer: checksum mismatch")
)

// Frame is one decoded protocol frame
type Frame struct {
	Command  uint8
	Feedback bool
	Param    uint16
}

// Checksum calculates the frame checksum: the two's complement of the sum of
// the version, length, command, feedback and parameter bytes
func Checksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return -sum
}

// EncodeFrame builds a complete frame
func EncodeFrame(f Frame) [FrameSize]byte {
	var feedback byte
	if f.Feedback {
		feedback = 1
	}

	buf := [FrameSize]byte{
		FrameStart,
		FrameVersion,
		FrameLength,
		f.Command,
		feedback,
		byte(f.Param >> 8),
		byte(f.Param),
		0, 0,
		FrameEnd,
	}

	sum := Checksum(buf[1:FramePositionChecksum])
	buf[FramePositionChecksum] = byte(sum >> 8)
	buf[FramePositionChecksum+1] = byte(sum)
	return buf
}

// DecodeFrame parses a frame from the first FrameSize bytes of data
func DecodeFrame(data []byte) (Frame, error) {
	if len(data) < FrameSize {
		return Frame{}, ErrFrame
	}
	if data[0] != FrameStart || data[1] != FrameVersion ||
		data[2] != FrameLength || data[FramePositionEnd] != FrameEnd {
		return Frame{}, ErrFrame
	}

	frameSum := uint16(data[FramePositionChecksum])<<8 | uint16(data[FramePositionChecksum+1])
	if frameSum != Checksum(data[1:FramePositionChecksum]) {
		return Frame{}, ErrChecksum
	}

	return Frame{
		Command:  data[FramePositionCmd],
		Feedback: data[FramePositionFeedback] != 0,
		Param:    uint16(data[FramePositionParam])<<8 | uint16(data[FramePositionParam+1]),
	}, nil
}
