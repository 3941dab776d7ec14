//go:build avr && atmega328p

package main

import (
	"device/avr"

	"tinydfplayer/core"
)

// Input multiplexer settings. The potentiometer sits on ADC0 (A0), the
// button ladder on ADC1 (A1).
const (
	muxPotentiometer = 0x00
	muxButtons       = 0x01
	muxBandgap       = 0x0E // 1.1V internal reference
)

// AVRADC implements core.AnalogConverter on the ATmega328P ADC. Conversions
// raise the ADC interrupt so the sampler can wait in noise-reduction sleep.
type AVRADC struct{}

// NewAVRADC prepares the analog pins. Digital input buffers are disabled on
// both so the analog levels do not leak current.
func NewAVRADC() AVRADC {
	avr.DIDR0.SetBits(avr.DIDR0_ADC0D | avr.DIDR0_ADC1D)
	return AVRADC{}
}

// Enable turns the converter on with a 125kHz clock (8MHz / 64)
func (AVRADC) Enable() {
	avr.ADCSRA.Set(avr.ADCSRA_ADEN | avr.ADCSRA_ADIE | avr.ADCSRA_ADPS2 | avr.ADCSRA_ADPS1)
}

// Select routes a channel to the converter, always against AVcc
func (AVRADC) Select(ch core.AnalogChannel) {
	var mux uint8
	switch ch {
	case core.ChannelPotentiometer:
		mux = muxPotentiometer
	case core.ChannelButtons:
		mux = muxButtons
	case core.ChannelBandgap:
		mux = muxBandgap
	}
	avr.ADMUX.Set(avr.ADMUX_REFS0 | mux)
}

func (AVRADC) Start() {
	avr.ADCSRA.SetBits(avr.ADCSRA_ADSC)
}

func (AVRADC) Busy() bool {
	return avr.ADCSRA.HasBits(avr.ADCSRA_ADSC)
}

// Result returns the last 10-bit conversion. ADCL must be read first.
func (AVRADC) Result() uint16 {
	low := avr.ADCL.Get()
	high := avr.ADCH.Get()
	return uint16(high)<<8 | uint16(low)
}

func (AVRADC) Disable() {
	avr.ADCSRA.Set(0)
}
