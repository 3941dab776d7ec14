package core

// MaxDenoiseShift bounds the averaging so a volume sample fits in one tick.
const MaxDenoiseShift = 6

// Config holds the calibration constants of the player.
// DefaultConfig is what the firmware is built with; host tooling can load
// alternatives through the config package.
type Config struct {
	Title string `json:"title"`

	// Resistor ladder levels on the button rail (10-bit counts)
	ButtonPrevious  uint16 `json:"button_previous"`
	ButtonNext      uint16 `json:"button_next"`
	ButtonOk        uint16 `json:"button_ok"`
	ButtonTolerance uint16 `json:"button_tolerance"`
	ButtonIdle      uint16 `json:"button_idle"` // rail reads above this when released

	// Potentiometer
	VolumeHysteresis uint16 `json:"volume_hysteresis"`
	VolumeDivisor    uint16 `json:"volume_divisor"`
	VolumeMax        uint8  `json:"volume_max"`
	DenoiseShift     uint8  `json:"denoise_shift"` // 1<<DenoiseShift conversions are averaged

	// Battery
	BandgapConstant       uint32 `json:"bandgap_constant"` // reference mV * 1023
	BatteryMinMV          uint16 `json:"battery_min_mv"`
	BatteryMaxMV          uint16 `json:"battery_max_mv"`
	BatteryRecoverPercent uint8  `json:"battery_recover_percent"`
	BatteryCheckInterval  uint16 `json:"battery_check_interval"` // loop iterations

	// Display
	ContrastNormal uint8 `json:"contrast_normal"`
	ContrastDim    uint8 `json:"contrast_dim"`
}

// DefaultConfig returns the calibration used by the reference hardware.
func DefaultConfig() Config {
	return Config{
		Title: "TinyDFPlayer",

		ButtonPrevious:  790,
		ButtonNext:      552,
		ButtonOk:        712,
		ButtonTolerance: 20,
		ButtonIdle:      1000,

		VolumeHysteresis: 8,
		VolumeDivisor:    34,
		VolumeMax:        30,
		DenoiseShift:     3,

		BandgapConstant:       1125300,
		BatteryMinMV:          3200,
		BatteryMaxMV:          4100,
		BatteryRecoverPercent: 10,
		BatteryCheckInterval:  600,

		ContrastNormal: 255,
		ContrastDim:    0,
	}
}
