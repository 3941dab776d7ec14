package core

// PowerManager owns the sleep/wake cycle. Sleeping is the default state of the
// firmware; every unit of work runs between two watchdog ticks.
type PowerManager struct {
	power    PowerController
	watchdog WatchdogTimer
	ticks    uint32
}

// NewPowerManager creates a PowerManager on top of the target's power and watchdog drivers.
func NewPowerManager(power PowerController, watchdog WatchdogTimer) *PowerManager {
	return &PowerManager{
		power:    power,
		watchdog: watchdog,
	}
}

// SleepOneTick powers down every peripheral, arms the watchdog and enters
// power-down sleep until the watchdog interrupt fires.
// All peripherals are left off on return; callers re-enable what they need.
func (pm *PowerManager) SleepOneTick() {
	pm.power.DisableAll()
	pm.watchdog.Arm()

	// Only the watchdog can end power-down; anything else goes back to sleep.
	for pm.power.Sleep(SleepPowerDown) != WakeWatchdog {
	}

	pm.watchdog.Disarm()
	pm.ticks++
}

// Ticks returns the number of watchdog ticks slept since boot.
func (pm *PowerManager) Ticks() uint32 {
	return pm.ticks
}

// Enable powers up a single peripheral.
func (pm *PowerManager) Enable(p Peripheral) {
	pm.power.Enable(p)
}

// Halt sleeps forever. Only a physical reset leaves this state.
func (pm *PowerManager) Halt() {
	for {
		pm.SleepOneTick()
	}
}
