//go:build avr && atmega328p

package main

import (
	"device/avr"
	"runtime/interrupt"
	"time"

	"tinydfplayer/core"
)

// Sleep mode select bits in SMCR
const (
	sleepModeADCNoise  = avr.SMCR_SM0
	sleepModePowerDown = avr.SMCR_SM1
)

// AVRPower implements core.PowerController with the power reduction register
// and the SLEEP instruction.
type AVRPower struct{}

func NewAVRPower() AVRPower {
	return AVRPower{}
}

// serialCharTime is one 8N1 character at 9600 baud, rounded up
const serialCharTime = 1100 * time.Microsecond

// DisableAll stops the clock of every on-chip peripheral. The ADC has to be
// switched off before its clock is removed. A frame still leaving the USART
// is finished first, otherwise the decoder sees a truncated command.
func (p AVRPower) DisableAll() {
	p.drainSerial()
	avr.ADCSRA.Set(0)
	avr.PRR.Set(avr.PRR_PRTWI | avr.PRR_PRTIM2 | avr.PRR_PRTIM0 | avr.PRR_PRTIM1 |
		avr.PRR_PRSPI | avr.PRR_PRUSART0 | avr.PRR_PRADC)
}

// drainSerial waits until the transmit buffer is empty and the shift
// register has sent its last character.
func (p AVRPower) drainSerial() {
	if avr.PRR.HasBits(avr.PRR_PRUSART0) || !avr.UCSR0B.HasBits(avr.UCSR0B_TXEN0) {
		return
	}
	for !avr.UCSR0A.HasBits(avr.UCSR0A_UDRE0) {
	}
	p.Delay(serialCharTime)
}

func (AVRPower) Enable(p core.Peripheral) {
	switch p {
	case core.PeripheralSerial:
		avr.PRR.ClearBits(avr.PRR_PRUSART0)
	case core.PeripheralTimers:
		avr.PRR.ClearBits(avr.PRR_PRTIM0 | avr.PRR_PRTIM1)
	case core.PeripheralADC:
		avr.PRR.ClearBits(avr.PRR_PRADC)
	case core.PeripheralI2C:
		avr.PRR.ClearBits(avr.PRR_PRTWI)
	}
}

// Sleep enters the requested mode and reports what woke the CPU.
// A wake flag set between the caller's check and the SLEEP instruction would
// otherwise be lost, so interrupts stay off until SEI, whose following
// instruction always executes before any pending interrupt.
func (AVRPower) Sleep(mode core.SleepMode) core.WakeSource {
	bits := uint8(sleepModePowerDown)
	if mode == core.SleepADCNoiseReduction {
		bits = sleepModeADCNoise
	}

	state := interrupt.Disable()

	flag := takeWake()
	if flag == 0 {
		avr.SMCR.Set(bits | avr.SMCR_SE)
		avr.Asm("sei\n\tsleep")
		avr.SMCR.Set(0)

		interrupt.Disable()
		flag = takeWake()
	}

	interrupt.Restore(state)

	switch flag {
	case wakeFlagWatchdog:
		return core.WakeWatchdog
	case wakeFlagADC:
		return core.WakeADC
	}
	return core.WakeNone
}

// Delay waits on the runtime clock, which runs from timer 0
func (AVRPower) Delay(d time.Duration) {
	avr.PRR.ClearBits(avr.PRR_PRTIM0)
	time.Sleep(d)
}
