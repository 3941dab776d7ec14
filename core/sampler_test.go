package core

import "testing"

func TestSampleOnceLeavesADCOff(t *testing.T) {
	adc := newMockADC()
	wdt := &mockWatchdog{}
	power := newMockPower(adc, wdt)
	adc.convTime = 3
	adc.queue(ChannelButtons, 712)

	s := NewSampler(adc, power, 3)
	value := s.SampleOnce(ChannelButtons)

	if value != 712 {
		t.Errorf("Expected 712, got %d", value)
	}
	if adc.enabled {
		t.Error("ADC left enabled after SampleOnce")
	}
	if adc.disables != 1 {
		t.Errorf("Expected 1 Disable, got %d", adc.disables)
	}
	if !power.enabled[PeripheralADC] {
		t.Error("ADC clock domain was not powered for the conversion")
	}
	if got := power.sleeps[SleepADCNoiseReduction]; got != 3 {
		t.Errorf("Expected 3 noise reduction sleeps, got %d", got)
	}
	if got := power.sleeps[SleepPowerDown]; got != 0 {
		t.Errorf("SampleOnce must not enter power-down, got %d", got)
	}
	if len(power.delays) != 0 {
		t.Errorf("Unexpected settle delay for button channel: %v", power.delays)
	}
}

func TestSampleOnceBandgapSettles(t *testing.T) {
	adc := newMockADC()
	power := newMockPower(adc, &mockWatchdog{})

	s := NewSampler(adc, power, 3)
	s.SampleOnce(ChannelBandgap)

	if len(power.delays) != 1 || power.delays[0] != BandgapSettle {
		t.Errorf("Expected one %v settle delay, got %v", BandgapSettle, power.delays)
	}
	if adc.conversions[ChannelBandgap] != 1 {
		t.Errorf("Expected a single bandgap conversion, got %d", adc.conversions[ChannelBandgap])
	}
}

func TestSampleDenoised(t *testing.T) {
	testCases := []struct {
		name     string
		samples  []uint16
		expected uint16
	}{
		{"constant", []uint16{500, 500, 500, 500, 500, 500, 500, 500}, 500},
		{"ramp", []uint16{100, 101, 102, 103, 104, 105, 106, 107}, 103},
		{"noisy", []uint16{0, 1023, 0, 1023, 0, 1023, 0, 1023}, 511},
		{"full scale", []uint16{1023, 1023, 1023, 1023, 1023, 1023, 1023, 1023}, 1023},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			adc := newMockADC()
			power := newMockPower(adc, &mockWatchdog{})
			adc.queue(ChannelPotentiometer, tc.samples...)

			s := NewSampler(adc, power, 3)
			got := s.SampleDenoised(ChannelPotentiometer)

			if got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
			if adc.conversions[ChannelPotentiometer] != 8 {
				t.Errorf("Expected 8 conversions, got %d", adc.conversions[ChannelPotentiometer])
			}
			if adc.enabled {
				t.Error("ADC left enabled after SampleDenoised")
			}
		})
	}
}
