package core

import "errors"

// ErrDecoderHandshake is returned by Begin when the audio decoder does not answer.
var ErrDecoderHandshake = errors.New("audio decoder handshake failed")

// Controller is the playback state machine. States are Playing and Paused
// (PlayerSession.Paused); every track change goes through StartFolderPlay.
type Controller struct {
	decoder AudioDecoder
	display Display
	screen  Presenter
	store   ByteStore
	pm      *PowerManager
	cfg     *Config
}

// NewController creates a Controller.
func NewController(decoder AudioDecoder, display Display, store ByteStore, pm *PowerManager, cfg *Config) *Controller {
	return &Controller{
		decoder: decoder,
		display: display,
		store:   store,
		pm:      pm,
		cfg:     cfg,
	}
}

// Begin performs the decoder handshake, restores the last folder and file
// from storage and reads the folder and file counts from the media.
func (c *Controller) Begin(state *PlayerState) error {
	c.ready()
	if err := c.decoder.Begin(); err != nil {
		debugError("decoder: ", err)
		return ErrDecoderHandshake
	}

	folder, file, restored := LoadRecord(c.store)
	state.Session.Folder = folder
	state.Session.File = file
	if restored && IsDebugEnabled() {
		DebugPrintln("restored folder " + utoa(uint32(folder)) + " file " + utoa(uint32(file)))
	}

	c.refreshFolderCount(state)
	c.refreshFileCount(state)
	return nil
}

// StartFolderPlay normalizes the session against the known counts, starts
// playback of (folder, file), persists the position and redraws the screen.
func (c *Controller) StartFolderPlay(state *PlayerState) {
	s := &state.Session

	if s.Folder == 0 || uint16(s.Folder) > state.FolderCount {
		s.Folder = 1
		s.File = 1
		c.refreshFileCount(state)
	}
	if s.File == 0 || uint16(s.File) > state.FileCount {
		s.File = 1
	}

	c.ready()
	c.check(c.decoder.PlayFolder(s.Folder, s.File))
	s.Paused = false

	SaveRecord(c.store, s.Folder, s.File)
	RecordEvent(EvtPlay, c.pm.Ticks(), uint16(s.Folder), uint16(s.File))

	c.Refresh(state)
}

// TrackFinished advances to the next file after the decoder reports the end of a track.
func (c *Controller) TrackFinished(state *PlayerState) {
	state.Session.File++
	c.StartFolderPlay(state)
}

// NextPressed skips to the next file.
func (c *Controller) NextPressed(state *PlayerState) {
	state.Session.File++
	c.StartFolderPlay(state)
}

// PreviousPressed moves to the first file of the following folder, wrapping
// from the last folder to folder 1.
func (c *Controller) PreviousPressed(state *PlayerState) {
	count := state.FolderCount
	if count == 0 {
		count = 1
	}
	state.Session.Folder = uint8(uint16(state.Session.Folder)%count + 1)
	state.Session.File = 1
	c.refreshFileCount(state)
	c.StartFolderPlay(state)
}

// OkPressed toggles between Playing and Paused. Folder, file and volume are untouched.
func (c *Controller) OkPressed(state *PlayerState) {
	if state.Session.Paused {
		c.resume(state)
	} else {
		c.pause(state)
	}
	c.Refresh(state)
}

// HandleButton dispatches a decoded button event.
func (c *Controller) HandleButton(state *PlayerState, event ButtonEvent) {
	RecordEvent(EvtButton, c.pm.Ticks(), uint16(event), 0)

	switch event {
	case ButtonPrevious:
		c.PreviousPressed(state)
	case ButtonNext:
		c.NextPressed(state)
	case ButtonOk:
		c.OkPressed(state)
	}
}

// HandleDecoderEvent dispatches a decoder notification.
func (c *Controller) HandleDecoderEvent(state *PlayerState, event DecoderEvent) {
	switch event.Type {
	case DecoderTrackFinished:
		RecordEvent(EvtTrackFinished, c.pm.Ticks(), event.Value, 0)
		c.TrackFinished(state)
	case DecoderError:
		RecordEvent(EvtDecoderError, c.pm.Ticks(), event.Value, 0)
		if IsDebugEnabled() {
			DebugPrintln("decoder reported error " + utoa(uint32(event.Value)))
		}
	}
}

// SetVolume sends a new volume level to the decoder and redraws the screen.
func (c *Controller) SetVolume(state *PlayerState, volume uint8) {
	state.Session.Volume = volume
	c.ready()
	c.check(c.decoder.SetVolume(volume))
	RecordEvent(EvtVolume, c.pm.Ticks(), uint16(volume), 0)
	c.Refresh(state)
}

// SetContrast changes the display contrast.
func (c *Controller) SetContrast(level uint8) {
	c.pm.Enable(PeripheralI2C)
	c.display.SetContrast(level)
}

// Refresh redraws the status screen.
func (c *Controller) Refresh(state *PlayerState) {
	c.pm.Enable(PeripheralI2C)
	if err := c.screen.Render(c.display, state, c.cfg); err != nil {
		debugError("display: ", err)
	}
}

// ShowError replaces the status screen with a fixed message.
func (c *Controller) ShowError(lines ...string) {
	c.pm.Enable(PeripheralI2C)
	if err := c.screen.RenderError(c.display, lines...); err != nil {
		debugError("display: ", err)
	}
}

func (c *Controller) pause(state *PlayerState) {
	c.ready()
	c.check(c.decoder.Pause())
	state.Session.Paused = true
}

func (c *Controller) resume(state *PlayerState) {
	c.ready()
	c.check(c.decoder.Resume())
	state.Session.Paused = false
}

func (c *Controller) refreshFolderCount(state *PlayerState) {
	c.ready()
	n, err := c.decoder.FolderCount()
	if err != nil {
		c.check(err)
		n = state.FolderCount
	}
	if n == 0 {
		n = 1
	}
	state.FolderCount = n
}

func (c *Controller) refreshFileCount(state *PlayerState) {
	c.ready()
	n, err := c.decoder.FileCountInFolder(state.Session.Folder)
	if err != nil {
		c.check(err)
		n = 0
	}
	if n == 0 {
		n = 1
	}
	state.FileCount = n
}

// ready powers the serial link and the timers the decoder driver waits on.
func (c *Controller) ready() {
	c.pm.Enable(PeripheralSerial)
	c.pm.Enable(PeripheralTimers)
}

// check logs a failed decoder command. Playback continues regardless.
func (c *Controller) check(err error) {
	if err == nil {
		return
	}
	RecordEvent(EvtDecoderError, c.pm.Ticks(), 0, 0)
	debugError("decoder: ", err)
}
