package dfplayer

// RxBufferSize holds a few frames of receive backlog
const RxBufferSize = 4 * FrameSize

// FifoBuffer is a fixed-size circular buffer for received bytes
type FifoBuffer struct {
	buf   [RxBufferSize + 1]byte
	read  int
	write int
}

// Push appends one byte. Returns false if the buffer is full
func (f *FifoBuffer) Push(b byte) bool {
	nextWrite := (f.write + 1) % len(f.buf)
	if nextWrite == f.read {
		return false
	}
	f.buf[f.write] = b
	f.write = nextWrite
	return true
}

// Available returns the number of bytes available for reading
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return len(f.buf) - f.read + f.write
}

// Peek returns the byte at offset i from the read position without consuming it
func (f *FifoBuffer) Peek(i int) byte {
	return f.buf[(f.read+i)%len(f.buf)]
}

// CopyTo copies up to len(dst) available bytes without consuming them
func (f *FifoBuffer) CopyTo(dst []byte) int {
	n := f.Available()
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = f.Peek(i)
	}
	return n
}

// Pop removes n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	for i := 0; i < n && f.read != f.write; i++ {
		f.read = (f.read + 1) % len(f.buf)
	}
}

// IsEmpty returns true if the buffer is empty
func (f *FifoBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
