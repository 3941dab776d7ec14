package player

import (
	"fmt"
	"io"
	"time"

	"tinydfplayer/core"
	"tinydfplayer/dfplayer"
	"tinydfplayer/host/serial"
)

// Conn is a byte link to the module that can be closed
type Conn interface {
	dfplayer.Port
	io.Closer

	// Flush discards received data that has not been read
	Flush() error
}

// Player represents a connection to a DFPlayer Mini module
type Player struct {
	conn   Conn
	device *dfplayer.Device

	// Card contents
	info *CardInfo

	// Connection state
	connected bool
}

// CardInfo describes the folder layout of the inserted card
type CardInfo struct {
	Folders uint16   `json:"folders"`
	Files   []uint16 `json:"files"` // Files[i] is the count for folder i+1
}

// NewPlayer creates a new Player instance (not yet connected)
func NewPlayer() *Player {
	return &Player{
		connected: false,
	}
}

// Connect connects to a module via serial port
func (p *Player) Connect(device string) error {
	return p.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig connects to a module with a custom serial config
func (p *Player) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}

	p.Attach(serial.NewBufferedPort(port))
	return nil
}

// Attach uses an already open link
func (p *Player) Attach(conn Conn) {
	p.conn = conn
	p.device = dfplayer.New(conn)
	p.connected = true
}

// Close closes the connection to the module
func (p *Player) Close() error {
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}
	p.connected = false
	return nil
}

// Device returns the protocol driver, nil before Connect
func (p *Player) Device() *dfplayer.Device {
	return p.device
}

// Begin resets the module and waits for it to come online
func (p *Player) Begin() error {
	if !p.connected {
		return fmt.Errorf("not connected to module")
	}

	// Whatever the module sent before the reset belongs to an older session
	if err := p.conn.Flush(); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}

	start := time.Now()
	if err := p.device.Begin(); err != nil {
		return fmt.Errorf("handshake failed: %w", err)
	}
	if core.IsDebugEnabled() {
		core.DebugPrintln("module online after " + time.Since(start).Round(time.Millisecond).String())
	}
	return nil
}

// RetrieveCardInfo queries the folder count and the file count of every folder
func (p *Player) RetrieveCardInfo() (*CardInfo, error) {
	if !p.connected {
		return nil, fmt.Errorf("not connected to module")
	}

	folders, err := p.device.FolderCount()
	if err != nil {
		return nil, fmt.Errorf("failed to query folder count: %w", err)
	}
	if folders > dfplayer.MaxFolder {
		folders = dfplayer.MaxFolder
	}

	info := &CardInfo{Folders: folders}
	for folder := uint16(1); folder <= folders; folder++ {
		files, err := p.device.FileCountInFolder(uint8(folder))
		if err != nil {
			return nil, fmt.Errorf("failed to query folder %d: %w", folder, err)
		}
		info.Files = append(info.Files, files)
	}

	p.info = info
	return info, nil
}

// GetCardInfo returns the last retrieved card layout
func (p *Player) GetCardInfo() *CardInfo {
	return p.info
}

// PrintCardInfo prints a summary of the card layout
func (p *Player) PrintCardInfo(w io.Writer) {
	if p.info == nil {
		fmt.Fprintln(w, "No card info loaded")
		return
	}

	fmt.Fprintln(w, "\n=== Card ===")
	fmt.Fprintf(w, "Folders: %d\n", p.info.Folders)
	for i, files := range p.info.Files {
		fmt.Fprintf(w, "  %02d: %d files\n", i+1, files)
	}
	fmt.Fprintln(w, "============")
}

// DrainEvents returns every notification received so far
func (p *Player) DrainEvents() []core.DecoderEvent {
	if !p.connected {
		return nil
	}

	var events []core.DecoderEvent
	for {
		ev, ok := p.device.Poll()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

// IsConnected returns whether the module is connected
func (p *Player) IsConnected() bool {
	return p.connected
}

// EventName returns a readable name for a decoder event type
func EventName(t core.DecoderEventType) string {
	switch t {
	case core.DecoderTrackFinished:
		return "track finished"
	case core.DecoderCardInserted:
		return "card inserted"
	case core.DecoderCardRemoved:
		return "card removed"
	case core.DecoderError:
		return "error"
	}
	return "none"
}
