package core

// Layout of the persistent record in non-volatile storage.
const (
	RecordAddrFlag   = 0
	RecordAddrFile   = 1
	RecordAddrFolder = 2

	// RecordInitialized marks a store that has been written by this firmware.
	RecordInitialized = 0xA5
)

// LoadRecord restores the last played folder and file. On first boot the
// store is initialized with folder 1, file 1 and restored is false.
func LoadRecord(store ByteStore) (folder, file uint8, restored bool) {
	if store.Get(RecordAddrFlag) != RecordInitialized {
		store.Update(RecordAddrFile, 1)
		store.Update(RecordAddrFolder, 1)
		store.Update(RecordAddrFlag, RecordInitialized)
		return 1, 1, false
	}
	return store.Get(RecordAddrFolder), store.Get(RecordAddrFile), true
}

// SaveRecord persists folder and file. Unchanged bytes are not rewritten.
func SaveRecord(store ByteStore, folder, file uint8) {
	store.Update(RecordAddrFile, file)
	store.Update(RecordAddrFolder, folder)
}
