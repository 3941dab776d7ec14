// Package dfplayer implements the DFPlayer Mini serial protocol
package dfplayer

// Frame layout: 7E FF 06 CMD FB PH PL CKH CKL EF
const (
	FrameSize = 10

	FrameStart   = 0x7E
	FrameVersion = 0xFF
	FrameLength  = 0x06
	FrameEnd     = 0xEF

	FramePositionCmd      = 3
	FramePositionFeedback = 4
	FramePositionParam    = 5
	FramePositionChecksum = 7
	FramePositionEnd      = 9
)

// Commands (host -> module)
const (
	CmdNext           = 0x01
	CmdPrevious       = 0x02
	CmdPlayTrack      = 0x03
	CmdVolumeUp       = 0x04
	CmdVolumeDown     = 0x05
	CmdSetVolume      = 0x06
	CmdSetEQ          = 0x07
	CmdSleep          = 0x0A
	CmdWakeUp         = 0x0B
	CmdReset          = 0x0C
	CmdResume         = 0x0D
	CmdPause          = 0x0E
	CmdPlayFolder     = 0x0F
	CmdQueryStatus    = 0x42
	CmdQueryVolume    = 0x43
	CmdQueryFileCount = 0x48 // total files on TF card
	CmdQueryFolder    = 0x4E // files in a folder
	CmdQueryFolders   = 0x4F // folder count
)

// Notifications (module -> host)
const (
	NotifyCardInserted = 0x3A
	NotifyCardRemoved  = 0x3B
	NotifyUSBFinished  = 0x3C
	NotifyTFFinished   = 0x3D
	NotifyFlashDone    = 0x3E
	NotifyOnline       = 0x3F
	NotifyError        = 0x40
	NotifyAck          = 0x41
)

// Module error codes carried by NotifyError
const (
	ErrCodeBusy         = 0x01
	ErrCodeSleeping     = 0x02
	ErrCodeSerial       = 0x03
	ErrCodeChecksum     = 0x04
	ErrCodeFileIndex    = 0x05
	ErrCodeFileNotFound = 0x06
	ErrCodeAdvertise    = 0x07
	ErrCodeSDRead       = 0x08
	ErrCodeSleep        = 0x0A
)

// Parameter limits
const (
	MaxVolume = 30
	MaxFolder = 99
	MaxFile   = 255
)
