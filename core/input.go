package core

// ButtonEvent is the decoded state of the button resistor ladder.
type ButtonEvent uint8

const (
	ButtonNone ButtonEvent = iota
	ButtonPrevious
	ButtonNext
	ButtonOk
)

func (e ButtonEvent) String() string {
	switch e {
	case ButtonNone:
		return "none"
	case ButtonPrevious:
		return "previous"
	case ButtonNext:
		return "next"
	case ButtonOk:
		return "ok"
	default:
		return "unknown"
	}
}

// ClassifyButton maps a raw button rail sample to an event.
// Each window is center±tolerance, inclusive.
func ClassifyButton(raw uint16, cfg *Config) ButtonEvent {
	switch {
	case inWindow(raw, cfg.ButtonPrevious, cfg.ButtonTolerance):
		return ButtonPrevious
	case inWindow(raw, cfg.ButtonOk, cfg.ButtonTolerance):
		return ButtonOk
	case inWindow(raw, cfg.ButtonNext, cfg.ButtonTolerance):
		return ButtonNext
	default:
		return ButtonNone
	}
}

func inWindow(raw, center, tolerance uint16) bool {
	return raw+tolerance >= center && raw <= center+tolerance
}

// VolumeLevel maps a tracked potentiometer value to a volume step.
func VolumeLevel(tracked uint16, cfg *Config) uint8 {
	level := tracked / cfg.VolumeDivisor
	if level > uint16(cfg.VolumeMax) {
		level = uint16(cfg.VolumeMax)
	}
	return uint8(level)
}

// InputDecoder turns raw analog levels into discrete, debounced events.
type InputDecoder struct {
	sampler *Sampler
	cfg     *Config
}

// NewInputDecoder creates an InputDecoder.
func NewInputDecoder(sampler *Sampler, cfg *Config) *InputDecoder {
	return &InputDecoder{
		sampler: sampler,
		cfg:     cfg,
	}
}

// ReadButtons samples the button rail once. If a button is down it blocks,
// sampling repeatedly, until the rail is back above the idle level, so a
// press yields exactly one event however long it is held. Nothing else in the
// main loop runs during the hold.
func (d *InputDecoder) ReadButtons() ButtonEvent {
	event := ClassifyButton(d.sampler.SampleOnce(ChannelButtons), d.cfg)
	if event == ButtonNone {
		return ButtonNone
	}

	for d.sampler.SampleOnce(ChannelButtons) <= d.cfg.ButtonIdle {
	}

	return event
}

// SampleVolume takes a denoised potentiometer sample without hysteresis.
func (d *InputDecoder) SampleVolume() (tracked uint16, volume uint8) {
	tracked = d.sampler.SampleDenoised(ChannelPotentiometer)
	return tracked, VolumeLevel(tracked, d.cfg)
}

// ReadVolume takes a denoised potentiometer sample and applies hysteresis
// against the tracked value. changed reports whether the tracked value moved.
func (d *InputDecoder) ReadVolume(tracked uint16) (newTracked uint16, volume uint8, changed bool) {
	sample := d.sampler.SampleDenoised(ChannelPotentiometer)

	var diff uint16
	if sample > tracked {
		diff = sample - tracked
	} else {
		diff = tracked - sample
	}

	if diff > d.cfg.VolumeHysteresis {
		tracked = sample
		changed = true
	}

	return tracked, VolumeLevel(tracked, d.cfg), changed
}
