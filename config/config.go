// Package config loads player calibration files for host tooling
package config

import (
	"encoding/json"
	"errors"
	"os"

	"tinydfplayer/core"
	"tinydfplayer/dfplayer"
)

var (
	ErrVolumeDivisor = errors.New("config: volume_divisor must be non-zero")
	ErrBatteryRange  = errors.New("config: battery_max_mv must be above battery_min_mv")
	ErrButtonOverlap = errors.New("config: button windows overlap")
	ErrButtonIdle    = errors.New("config: button windows must lie below button_idle")
	ErrVolumeMax     = errors.New("config: volume_max is above the module's maximum")
	ErrDenoiseShift  = errors.New("config: denoise_shift is too large")
	ErrRecover       = errors.New("config: battery_recover_percent must be 1-100")
)

// Load parses a JSON calibration on top of core.DefaultConfig. Fields the
// file leaves out keep their defaults; fields it sets are taken as given,
// zero included.
func Load(jsonData []byte) (*core.Config, error) {
	cfg := core.DefaultConfig()

	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile reads and parses a calibration file
func LoadFile(path string) (*core.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// Validate rejects calibrations the firmware cannot run with
func Validate(cfg *core.Config) error {
	if cfg.VolumeDivisor == 0 {
		return ErrVolumeDivisor
	}
	if cfg.VolumeMax > dfplayer.MaxVolume {
		return ErrVolumeMax
	}
	if cfg.DenoiseShift > core.MaxDenoiseShift {
		return ErrDenoiseShift
	}
	if cfg.BatteryMaxMV <= cfg.BatteryMinMV {
		return ErrBatteryRange
	}
	if cfg.BatteryRecoverPercent == 0 || cfg.BatteryRecoverPercent > 100 {
		return ErrRecover
	}

	centers := []uint16{cfg.ButtonPrevious, cfg.ButtonNext, cfg.ButtonOk}
	for i, a := range centers {
		if a+cfg.ButtonTolerance >= cfg.ButtonIdle {
			return ErrButtonIdle
		}
		for _, b := range centers[i+1:] {
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			if hi-lo <= 2*cfg.ButtonTolerance {
				return ErrButtonOverlap
			}
		}
	}

	return nil
}
