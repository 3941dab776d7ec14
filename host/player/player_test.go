package player

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tinydfplayer/core"
	"tinydfplayer/dfplayer"
)

// scriptedConn answers queries like a module with a fixed card layout
type scriptedConn struct {
	rx      []byte
	files   map[uint16]uint16
	closed  bool
	silent  bool
	flushes int
}

func reply(cmd uint8, param uint16) []byte {
	buf := dfplayer.EncodeFrame(dfplayer.Frame{Command: cmd, Param: param})
	return buf[:]
}

func (c *scriptedConn) Write(data []byte) (int, error) {
	frame, err := dfplayer.DecodeFrame(data)
	if err != nil {
		return 0, err
	}
	if c.silent {
		return len(data), nil
	}

	switch frame.Command {
	case dfplayer.CmdReset:
		c.rx = append(c.rx, reply(dfplayer.NotifyOnline, 2)...)
	case dfplayer.CmdQueryFolders:
		c.rx = append(c.rx, reply(dfplayer.CmdQueryFolders, uint16(len(c.files)))...)
	case dfplayer.CmdQueryFolder:
		c.rx = append(c.rx, reply(dfplayer.CmdQueryFolder, c.files[frame.Param])...)
	}
	return len(data), nil
}

func (c *scriptedConn) Buffered() int { return len(c.rx) }

func (c *scriptedConn) ReadByte() (byte, error) {
	if len(c.rx) == 0 {
		return 0, errors.New("empty")
	}
	b := c.rx[0]
	c.rx = c.rx[1:]
	return b, nil
}

func (c *scriptedConn) Flush() error {
	c.rx = c.rx[:0]
	c.flushes++
	return nil
}

func (c *scriptedConn) Close() error {
	c.closed = true
	return nil
}

func attach(conn *scriptedConn) *Player {
	p := NewPlayer()
	p.Attach(conn)
	p.Device().BeginPolls = 5
	p.Device().QueryPolls = 5
	p.Device().Wait = func() {}
	return p
}

func TestNotConnected(t *testing.T) {
	p := NewPlayer()

	if err := p.Begin(); err == nil {
		t.Error("Begin should fail before Connect")
	}
	if _, err := p.RetrieveCardInfo(); err == nil {
		t.Error("RetrieveCardInfo should fail before Connect")
	}
	if p.DrainEvents() != nil {
		t.Error("Expected no events before Connect")
	}
}

func TestBeginAndCardInfo(t *testing.T) {
	conn := &scriptedConn{files: map[uint16]uint16{1: 12, 2: 3}}
	p := attach(conn)

	if err := p.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	info, err := p.RetrieveCardInfo()
	if err != nil {
		t.Fatalf("RetrieveCardInfo failed: %v", err)
	}
	if info.Folders != 2 || len(info.Files) != 2 || info.Files[0] != 12 || info.Files[1] != 3 {
		t.Errorf("Unexpected card info %+v", *info)
	}

	var out bytes.Buffer
	p.PrintCardInfo(&out)
	if !strings.Contains(out.String(), "01: 12 files") {
		t.Errorf("Unexpected summary:\n%s", out.String())
	}

	if err := p.Close(); err != nil || !conn.closed || p.IsConnected() {
		t.Errorf("Close did not close the link (err=%v)", err)
	}
}

func TestBeginDiscardsStaleInput(t *testing.T) {
	conn := &scriptedConn{}
	p := attach(conn)

	// An error notification left over from before the reset
	conn.rx = append(conn.rx, reply(dfplayer.NotifyError, dfplayer.ErrCodeBusy)...)

	if err := p.Begin(); err != nil {
		t.Fatalf("Begin failed on stale input: %v", err)
	}
	if conn.flushes != 1 {
		t.Errorf("Expected one flush, got %d", conn.flushes)
	}
}

func TestBeginTimeout(t *testing.T) {
	p := attach(&scriptedConn{silent: true})

	err := p.Begin()
	if !errors.Is(err, dfplayer.ErrTimeout) {
		t.Errorf("Expected wrapped ErrTimeout, got %v", err)
	}
}

func TestDrainEvents(t *testing.T) {
	conn := &scriptedConn{}
	p := attach(conn)
	conn.rx = append(conn.rx, reply(dfplayer.NotifyTFFinished, 3)...)
	conn.rx = append(conn.rx, reply(dfplayer.NotifyCardRemoved, 2)...)

	events := p.DrainEvents()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Type != core.DecoderTrackFinished || EventName(events[1].Type) != "card removed" {
		t.Errorf("Unexpected events %+v", events)
	}
}
