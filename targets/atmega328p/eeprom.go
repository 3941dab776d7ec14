//go:build avr && atmega328p

package main

import (
	"device/avr"
	"runtime/interrupt"
)

// EEPROM implements core.ByteStore on the internal 1KB EEPROM
type EEPROM struct{}

func (EEPROM) Get(addr uint16) byte {
	waitEEPROM()
	setEEPROMAddress(addr)
	avr.EECR.SetBits(avr.EECR_EERE)
	return avr.EEDR.Get()
}

// Update skips the write when the cell already holds b. Each cell is
// good for about 100k erase/write cycles.
func (e EEPROM) Update(addr uint16, b byte) {
	if e.Get(addr) == b {
		return
	}

	waitEEPROM()
	setEEPROMAddress(addr)
	avr.EEDR.Set(b)

	// EEPE must follow EEMPE within four cycles
	state := interrupt.Disable()
	avr.EECR.SetBits(avr.EECR_EEMPE)
	avr.EECR.SetBits(avr.EECR_EEPE)
	interrupt.Restore(state)
}

func waitEEPROM() {
	for avr.EECR.HasBits(avr.EECR_EEPE) {
	}
}

func setEEPROMAddress(addr uint16) {
	avr.EEARH.Set(uint8(addr >> 8))
	avr.EEARL.Set(uint8(addr))
}
