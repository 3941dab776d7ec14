package dfplayer

import (
	"errors"
	"io"
	"time"

	"tinydfplayer/core"
)

var (
	// ErrTimeout is returned when the module does not answer in time
	ErrTimeout = errors.New("dfplayer: timeout")

	// ErrModule is returned when the module answers with an error notification
	ErrModule = errors.New("dfplayer: module error")

	// ErrRange is returned for parameters the module cannot accept
	ErrRange = errors.New("dfplayer: parameter out of range")
)

// Default wait budgets, counted in polls of the port
const (
	DefaultBeginPolls = 3000 // module boot after reset takes up to ~3s
	DefaultQueryPolls = 500
)

const eventQueueSize = 4

// tailPolls bounds how long Poll waits for the rest of a frame whose start
// has already arrived. One frame takes about 10ms at 9600 baud.
const tailPolls = 12

// Port is the serial link to the module
type Port interface {
	io.Writer

	// Buffered returns the number of bytes that can be read without blocking
	Buffered() int
	ReadByte() (byte, error)
}

// Device drives a DFPlayer Mini over a serial port. It implements
// core.AudioDecoder.
type Device struct {
	port Port
	rx   Receiver
	tx   [FrameSize]byte

	// Notifications received while waiting for a reply
	events     [eventQueueSize]core.DecoderEvent
	eventHead  int
	eventCount int

	// The module reports a finished track twice
	lastFinished uint16
	finishedSeen bool

	BeginPolls int
	QueryPolls int

	// Wait is called between polls that found no complete frame
	Wait func()

	// LastError holds the code of the most recent error notification
	LastError uint8
}

// New creates a Device on port
func New(port Port) *Device {
	return &Device{
		port:       port,
		BeginPolls: DefaultBeginPolls,
		QueryPolls: DefaultQueryPolls,
		Wait:       func() { time.Sleep(time.Millisecond) },
	}
}

// Begin resets the module and waits until it reports it is online
func (d *Device) Begin() error {
	d.rx.Reset()
	d.eventHead, d.eventCount = 0, 0
	d.finishedSeen = false

	if err := d.send(CmdReset, 0); err != nil {
		return err
	}

	for i := 0; i < d.BeginPolls; i++ {
		frame, ok := d.receive()
		if !ok {
			d.Wait()
			continue
		}
		switch frame.Command {
		case NotifyOnline:
			if core.IsDebugEnabled() {
				core.DebugPrintln("[DFP] online, media " + hex8(uint8(frame.Param)))
			}
			return nil
		case NotifyError:
			d.LastError = uint8(frame.Param)
			return ErrModule
		default:
			d.dispatch(frame)
		}
	}
	return ErrTimeout
}

// SetVolume sets the output volume (0-30)
func (d *Device) SetVolume(volume uint8) error {
	if volume > MaxVolume {
		return ErrRange
	}
	return d.send(CmdSetVolume, uint16(volume))
}

// PlayFolder plays file from folder. Files are named 001.mp3 ... 255.mp3
// in folders 01 ... 99.
func (d *Device) PlayFolder(folder, file uint8) error {
	if folder == 0 || folder > MaxFolder || file == 0 {
		return ErrRange
	}
	d.finishedSeen = false
	return d.send(CmdPlayFolder, uint16(folder)<<8|uint16(file))
}

// Pause pauses playback
func (d *Device) Pause() error {
	return d.send(CmdPause, 0)
}

// Resume continues paused playback
func (d *Device) Resume() error {
	return d.send(CmdResume, 0)
}

// Sleep puts the module into its low-power state
func (d *Device) Sleep() error {
	return d.send(CmdSleep, 0)
}

// FolderCount queries the number of folders on the card
func (d *Device) FolderCount() (uint16, error) {
	return d.query(CmdQueryFolders, 0)
}

// FileCountInFolder queries the number of files in folder
func (d *Device) FileCountInFolder(folder uint8) (uint16, error) {
	return d.query(CmdQueryFolder, uint16(folder))
}

// Poll returns a pending notification. It only waits when a frame has
// started arriving, for at most tailPolls polls.
func (d *Device) Poll() (core.DecoderEvent, bool) {
	tail := 0
	for d.eventCount == 0 {
		frame, ok := d.receive()
		if !ok {
			if !d.rx.Pending() || tail == tailPolls {
				return core.DecoderEvent{}, false
			}
			tail++
			d.Wait()
			continue
		}
		d.dispatch(frame)
	}

	ev := d.events[d.eventHead]
	d.eventHead = (d.eventHead + 1) % eventQueueSize
	d.eventCount--
	return ev, true
}

func (d *Device) send(cmd uint8, param uint16) error {
	d.tx = EncodeFrame(Frame{Command: cmd, Param: param})
	_, err := d.port.Write(d.tx[:])
	return err
}

// query sends cmd and waits for the reply carrying the same command code.
// Notifications arriving in between are queued for Poll.
func (d *Device) query(cmd uint8, param uint16) (uint16, error) {
	if err := d.send(cmd, param); err != nil {
		return 0, err
	}

	for i := 0; i < d.QueryPolls; i++ {
		frame, ok := d.receive()
		if !ok {
			d.Wait()
			continue
		}
		switch frame.Command {
		case cmd:
			return frame.Param, nil
		case NotifyError:
			d.LastError = uint8(frame.Param)
			return 0, ErrModule
		default:
			d.dispatch(frame)
		}
	}
	return 0, ErrTimeout
}

// receive reads from the port until a frame is complete or the port is
// drained. Bytes stay in the port buffer until needed.
func (d *Device) receive() (Frame, bool) {
	for {
		if frame, ok := d.rx.Next(); ok {
			return frame, true
		}
		if d.port.Buffered() == 0 {
			return Frame{}, false
		}
		b, err := d.port.ReadByte()
		if err != nil {
			return Frame{}, false
		}
		d.rx.Feed(b)
	}
}

// dispatch turns an unsolicited frame into a queued event
func (d *Device) dispatch(frame Frame) {
	var ev core.DecoderEvent
	switch frame.Command {
	case NotifyTFFinished, NotifyUSBFinished:
		if d.finishedSeen && d.lastFinished == frame.Param {
			return
		}
		d.finishedSeen = true
		d.lastFinished = frame.Param
		ev = core.DecoderEvent{Type: core.DecoderTrackFinished, Value: frame.Param}
	case NotifyCardInserted:
		ev = core.DecoderEvent{Type: core.DecoderCardInserted, Value: frame.Param}
	case NotifyCardRemoved:
		ev = core.DecoderEvent{Type: core.DecoderCardRemoved, Value: frame.Param}
	case NotifyError:
		d.LastError = uint8(frame.Param)
		ev = core.DecoderEvent{Type: core.DecoderError, Value: frame.Param}
	default:
		// Acks and stray query replies
		return
	}

	if d.eventCount == eventQueueSize {
		// Drop the oldest
		d.eventHead = (d.eventHead + 1) % eventQueueSize
		d.eventCount--
	}
	d.events[(d.eventHead+d.eventCount)%eventQueueSize] = ev
	d.eventCount++
}

func hex8(v uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0x0f]})
}
