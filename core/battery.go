package core

// BatteryMillivolts converts a bandgap conversion into the supply voltage,
// clamped to the configured discharge range.
func BatteryMillivolts(raw uint16, cfg *Config) uint16 {
	if raw == 0 {
		return cfg.BatteryMaxMV
	}

	mv := cfg.BandgapConstant / uint32(raw)
	if mv < uint32(cfg.BatteryMinMV) {
		return cfg.BatteryMinMV
	}
	if mv > uint32(cfg.BatteryMaxMV) {
		return cfg.BatteryMaxMV
	}
	return uint16(mv)
}

// BatteryPercent maps a clamped supply voltage linearly onto 0..100.
func BatteryPercent(mv uint16, cfg *Config) uint8 {
	if mv <= cfg.BatteryMinMV {
		return 0
	}
	step := (cfg.BatteryMaxMV - cfg.BatteryMinMV) / 100
	if step == 0 {
		step = 1
	}
	percent := (mv - cfg.BatteryMinMV) / step
	if percent > 100 {
		percent = 100
	}
	return uint8(percent)
}

// BatteryMonitor samples the supply voltage on a coarse loop-count schedule
// and locks the player out while the battery is empty.
type BatteryMonitor struct {
	sampler *Sampler
	pm      *PowerManager
	ctl     *Controller
	cfg     *Config
}

// NewBatteryMonitor creates a BatteryMonitor.
func NewBatteryMonitor(sampler *Sampler, pm *PowerManager, ctl *Controller, cfg *Config) *BatteryMonitor {
	return &BatteryMonitor{
		sampler: sampler,
		pm:      pm,
		ctl:     ctl,
		cfg:     cfg,
	}
}

// Measure takes one bandgap conversion and returns the supply voltage and charge level.
func (b *BatteryMonitor) Measure() (mv uint16, percent uint8) {
	mv = BatteryMillivolts(b.sampler.SampleOnce(ChannelBandgap), b.cfg)
	return mv, BatteryPercent(mv, b.cfg)
}

// CheckLevel measures the battery and re-arms the check counter. An empty
// battery enters the lockout, which returns only after recovery.
func (b *BatteryMonitor) CheckLevel(state *PlayerState) {
	state.Battery.SinceLastCheck = b.cfg.BatteryCheckInterval

	mv, percent := b.Measure()
	state.Battery.LevelPercent = percent
	RecordEvent(EvtBattery, b.pm.Ticks(), uint16(percent), mv)

	if percent == 0 {
		b.lockout(state)
	}
}

// Tick counts down one loop iteration and runs CheckLevel when due.
// The screen is redrawn when the level changed.
func (b *BatteryMonitor) Tick(state *PlayerState) {
	if state.Battery.SinceLastCheck > 0 {
		state.Battery.SinceLastCheck--
	}
	if state.Battery.SinceLastCheck > 0 {
		return
	}

	previous := state.Battery.LevelPercent
	b.CheckLevel(state)
	if state.Battery.LevelPercent != previous {
		b.ctl.Refresh(state)
	}
}

// lockout pauses playback and dims the screen, then sleeps and samples until
// the battery has recovered. Playback resumes only if the user had not paused it.
func (b *BatteryMonitor) lockout(state *PlayerState) {
	RecordEvent(EvtLockout, b.pm.Ticks(), uint16(state.Battery.LevelPercent), 0)
	DebugPrintln("battery empty, locking out")

	userPaused := state.Session.Paused
	if !userPaused {
		b.ctl.pause(state)
	}
	b.ctl.SetContrast(b.cfg.ContrastDim)
	b.ctl.Refresh(state)

	for state.Battery.LevelPercent < b.cfg.BatteryRecoverPercent {
		b.pm.SleepOneTick()

		_, percent := b.Measure()
		if percent != state.Battery.LevelPercent {
			state.Battery.LevelPercent = percent
			b.ctl.Refresh(state)
		}
	}

	if IsDebugEnabled() {
		DebugPrintln("battery recovered at " + utoa(uint32(state.Battery.LevelPercent)) + "%")
	}

	b.ctl.SetContrast(b.cfg.ContrastNormal)
	if !userPaused {
		b.ctl.resume(state)
	}
	b.ctl.Refresh(state)
}
