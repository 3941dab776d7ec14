package serial

import (
	"io"
	"sync"
)

// BufferedPort reads a Port in the background so callers can check how many
// bytes are waiting and take them one at a time without blocking.
type BufferedPort struct {
	port Port

	mu  sync.Mutex
	buf []byte
	err error

	done chan struct{}
}

// NewBufferedPort starts the background reader on port
func NewBufferedPort(port Port) *BufferedPort {
	b := &BufferedPort{
		port: port,
		done: make(chan struct{}),
	}
	go b.readLoop()
	return b
}

func (b *BufferedPort) readLoop() {
	defer close(b.done)

	chunk := make([]byte, 64)
	for {
		n, err := b.port.Read(chunk)

		b.mu.Lock()
		b.buf = append(b.buf, chunk[:n]...)
		if err != nil {
			b.err = err
		}
		b.mu.Unlock()

		// A read timeout returns no data and no error
		if err != nil {
			return
		}
	}
}

// Buffered returns the number of bytes received but not yet read
func (b *BufferedPort) Buffered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}

// ReadByte returns the next received byte. Once the buffer is empty it
// returns the error that stopped the reader, or io.EOF if it is still running.
func (b *BufferedPort) ReadByte() (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.buf) == 0 {
		if b.err != nil {
			return 0, b.err
		}
		return 0, io.EOF
	}

	c := b.buf[0]
	b.buf = b.buf[1:]
	return c, nil
}

// Flush drops everything received so far, here and in the driver
func (b *BufferedPort) Flush() error {
	b.mu.Lock()
	b.buf = b.buf[:0]
	b.mu.Unlock()
	return b.port.Flush()
}

// Write writes data to the underlying port
func (b *BufferedPort) Write(p []byte) (int, error) {
	return b.port.Write(p)
}

// Close closes the port and waits for the reader to stop
func (b *BufferedPort) Close() error {
	err := b.port.Close()
	<-b.done
	return err
}
