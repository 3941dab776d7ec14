package core

// PlayerSession is what is playing.
type PlayerSession struct {
	Folder uint8 // 1..FolderCount
	File   uint8 // 1..FileCount
	Volume uint8 // 0..30
	Paused bool
}

// BatteryState is the last battery measurement.
type BatteryState struct {
	LevelPercent   uint8
	SinceLastCheck uint16 // loop iterations left until the next check
}

// PlayerState is the whole mutable state of the firmware. One instance is
// owned by the Firmware and handed to every component by pointer.
type PlayerState struct {
	Session PlayerSession
	Battery BatteryState

	FolderCount uint16
	FileCount   uint16 // files in Session.Folder

	// PotTracked is the potentiometer value accepted by the hysteresis filter.
	PotTracked uint16
}
