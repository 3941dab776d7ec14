package core

import "time"

// BandgapSettle is how long the internal reference needs after being selected.
const BandgapSettle = 2 * time.Millisecond

// Sampler takes sleep-assisted ADC conversions.
// The converter is powered only for the duration of a conversion.
type Sampler struct {
	adc   AnalogConverter
	power PowerController
	shift uint8
}

// NewSampler creates a Sampler averaging 1<<denoiseShift conversions in SampleDenoised.
func NewSampler(adc AnalogConverter, power PowerController, denoiseShift uint8) *Sampler {
	return &Sampler{
		adc:   adc,
		power: power,
		shift: denoiseShift,
	}
}

// SampleOnce performs one conversion on ch, sleeping in ADC noise reduction
// mode until it completes. The ADC is powered off on return.
func (s *Sampler) SampleOnce(ch AnalogChannel) uint16 {
	s.power.Enable(PeripheralADC)
	s.adc.Enable()

	s.adc.Select(ch)
	if ch == ChannelBandgap {
		s.power.Delay(BandgapSettle)
	}

	s.adc.Start()
	s.waitConversion()
	value := s.adc.Result()

	s.adc.Disable()
	return value & AnalogMax
}

// SampleDenoised averages 1<<shift conversions (sum then shift).
func (s *Sampler) SampleDenoised(ch AnalogChannel) uint16 {
	n := 1 << s.shift
	var sum uint32
	for i := 0; i < n; i++ {
		sum += uint32(s.SampleOnce(ch))
	}
	return uint16(sum >> s.shift)
}

// waitConversion sleeps until the conversion-complete interrupt clears Busy.
func (s *Sampler) waitConversion() {
	for s.adc.Busy() {
		s.power.Sleep(SleepADCNoiseReduction)
	}
}
