package core

// Peripherals bundles the target drivers the firmware runs on.
type Peripherals struct {
	ADC      AnalogConverter
	Power    PowerController
	Watchdog WatchdogTimer
	Decoder  AudioDecoder
	Display  Display
	Store    ByteStore
}

// Firmware is the power-managed event loop. It owns the only PlayerState.
type Firmware struct {
	cfg   Config
	state PlayerState

	decoder AudioDecoder

	pm      *PowerManager
	sampler *Sampler
	input   *InputDecoder
	ctl     *Controller
	battery *BatteryMonitor
}

// NewFirmware wires the components on top of the given peripherals.
func NewFirmware(p Peripherals, cfg Config) *Firmware {
	f := &Firmware{
		cfg:     cfg,
		decoder: p.Decoder,
	}

	f.pm = NewPowerManager(p.Power, p.Watchdog)
	f.sampler = NewSampler(p.ADC, p.Power, f.cfg.DenoiseShift)
	f.input = NewInputDecoder(f.sampler, &f.cfg)
	f.ctl = NewController(p.Decoder, p.Display, p.Store, f.pm, &f.cfg)
	f.battery = NewBatteryMonitor(f.sampler, f.pm, f.ctl, &f.cfg)

	return f
}

// State returns the firmware's player state.
func (f *Firmware) State() *PlayerState {
	return &f.state
}

// Start brings the player up: decoder handshake, restore of the last
// position, initial volume, first battery check and start of playback.
// A failed handshake is returned as ErrDecoderHandshake.
func (f *Firmware) Start() error {
	state := &f.state

	f.ctl.SetContrast(f.cfg.ContrastNormal)
	if err := f.ctl.Begin(state); err != nil {
		return err
	}

	tracked, volume := f.input.SampleVolume()
	state.PotTracked = tracked
	f.ctl.SetVolume(state, volume)

	f.battery.CheckLevel(state)
	f.ctl.StartFolderPlay(state)

	if IsDebugEnabled() {
		DebugPrintln("started: " + utoa(uint32(state.FolderCount)) + " folders")
	}
	return nil
}

// Fatal shows the error screen, forces the decoder into low-power mode and
// sleeps until a physical reset. It never returns.
func (f *Firmware) Fatal(err error) {
	f.showFatal(err)
	f.pm.Halt()
}

func (f *Firmware) showFatal(err error) {
	debugError("fatal: ", err)
	DumpTraceRing()

	f.ctl.ShowError(f.cfg.Title, "", "Player error!", "Check SD card")

	f.ctl.ready()
	if serr := f.decoder.Sleep(); serr != nil {
		debugError("decoder: ", serr)
	}
}

// Run executes the main loop forever.
func (f *Firmware) Run() {
	for {
		f.Step()
	}
}

// Step runs one loop iteration in fixed order: decoder poll, volume,
// buttons (blocking until release), battery counter, one watchdog sleep.
func (f *Firmware) Step() {
	state := &f.state

	f.ctl.ready()
	if event, ok := f.decoder.Poll(); ok {
		f.ctl.HandleDecoderEvent(state, event)
	}

	if tracked, volume, changed := f.input.ReadVolume(state.PotTracked); changed {
		state.PotTracked = tracked
		if volume != state.Session.Volume {
			f.ctl.SetVolume(state, volume)
		}
	}

	if event := f.input.ReadButtons(); event != ButtonNone {
		f.ctl.HandleButton(state, event)
	}

	f.battery.Tick(state)

	f.pm.SleepOneTick()
}
