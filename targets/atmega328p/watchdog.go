//go:build avr && atmega328p

package main

import (
	"device/avr"
	"runtime/interrupt"
)

// AVRWatchdog runs the watchdog in interrupt-only mode with a 32ms period.
// It never resets the chip.
type AVRWatchdog struct{}

func (AVRWatchdog) Arm() {
	setWatchdog(avr.WDTCSR_WDIE | avr.WDTCSR_WDP0)
}

func (AVRWatchdog) Disarm() {
	setWatchdog(0)
}

// setWatchdog performs the timed change sequence: WDCE|WDE, then the new
// value within four cycles.
func setWatchdog(value uint8) {
	state := interrupt.Disable()
	avr.Asm("wdr")
	avr.MCUSR.ClearBits(avr.MCUSR_WDRF)
	avr.WDTCSR.Set(avr.WDTCSR_WDCE | avr.WDTCSR_WDE)
	avr.WDTCSR.Set(value)
	interrupt.Restore(state)
}
