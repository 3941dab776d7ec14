package dfplayer

// Receiver reassembles frames from a byte stream. Garbage between frames and
// frames that fail validation are skipped by resynchronizing on the next
// start byte.
type Receiver struct {
	fifo    FifoBuffer
	scratch [FrameSize]byte

	// Counters for diagnostics
	Dropped   uint16 // bytes lost to a full buffer
	Discarded uint16 // bytes skipped while resynchronizing
}

// Feed appends received bytes
func (r *Receiver) Feed(data ...byte) {
	for _, b := range data {
		if !r.fifo.Push(b) {
			r.Dropped++
		}
	}
}

// Next returns the next complete, valid frame
func (r *Receiver) Next() (Frame, bool) {
	for {
		// Skip to a start byte
		for !r.fifo.IsEmpty() && r.fifo.Peek(0) != FrameStart {
			r.fifo.Pop(1)
			r.Discarded++
		}

		// Wait for full frame
		if r.fifo.Available() < FrameSize {
			return Frame{}, false
		}

		r.fifo.CopyTo(r.scratch[:])
		frame, err := DecodeFrame(r.scratch[:])
		if err != nil {
			// Not a frame start after all - drop it and look for the next one
			r.fifo.Pop(1)
			r.Discarded++
			continue
		}

		r.fifo.Pop(FrameSize)
		return frame, true
	}
}

// Pending reports whether a frame has started but not yet fully arrived
func (r *Receiver) Pending() bool {
	return !r.fifo.IsEmpty() && r.fifo.Peek(0) == FrameStart && r.fifo.Available() < FrameSize
}

// Reset discards buffered data
func (r *Receiver) Reset() {
	r.fifo.Reset()
}
