//go:build avr && atmega328p

package main

import (
	"machine"

	"tinydfplayer/core"
	"tinydfplayer/dfplayer"
)

const (
	// DFPlayer Mini only talks 9600 8N1
	decoderBaud = 9600

	displayI2CFrequency = 400 * machine.KHz
)

func main() {
	cfg := core.DefaultConfig()

	// UART0 belongs to the DFPlayer, there is no spare port for debug output
	core.SetDebugEnabled(false)

	machine.UART0.Configure(machine.UARTConfig{BaudRate: decoderBaud})
	machine.I2C0.Configure(machine.I2CConfig{Frequency: displayI2CFrequency})

	InitWakeInterrupts()

	fw := core.NewFirmware(core.Peripherals{
		ADC:      NewAVRADC(),
		Power:    NewAVRPower(),
		Watchdog: AVRWatchdog{},
		Decoder:  dfplayer.New(machine.UART0),
		Display:  NewOLEDDisplay(machine.I2C0),
		Store:    EEPROM{},
	}, cfg)

	if err := fw.Start(); err != nil {
		fw.Fatal(err)
	}

	fw.Run()
}
