//go:build avr && atmega328p

package main

import (
	"device/avr"
	"runtime/interrupt"
	"runtime/volatile"
)

const (
	wakeFlagWatchdog = 1 << iota
	wakeFlagADC
)

// Set from interrupt context, consumed by AVRPower.Sleep
var wakeFlags volatile.Register8

// InitWakeInterrupts installs the watchdog and ADC completion handlers that
// end a sleep.
func InitWakeInterrupts() {
	interrupt.New(avr.IRQ_WDT, func(interrupt.Interrupt) {
		wakeFlags.SetBits(wakeFlagWatchdog)
	})
	interrupt.New(avr.IRQ_ADC, func(interrupt.Interrupt) {
		wakeFlags.SetBits(wakeFlagADC)
	})
}

// takeWake consumes one pending wake flag. Must be called with interrupts
// disabled.
func takeWake() uint8 {
	flags := wakeFlags.Get()
	switch {
	case flags&wakeFlagWatchdog != 0:
		wakeFlags.ClearBits(wakeFlagWatchdog)
		return wakeFlagWatchdog
	case flags&wakeFlagADC != 0:
		wakeFlags.ClearBits(wakeFlagADC)
		return wakeFlagADC
	}
	return 0
}
