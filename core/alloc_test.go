package core

import (
	"testing"
	"time"
)

// The fakes below hold no maps or slices so that allocation counts only
// reflect the code under test.

type staticADC struct {
	pot, buttons, bandgap uint16
	selected              AnalogChannel
	busy                  bool
}

func (a *staticADC) Enable()                 {}
func (a *staticADC) Select(ch AnalogChannel) { a.selected = ch }
func (a *staticADC) Start()                  { a.busy = true }
func (a *staticADC) Busy() bool              { return a.busy }
func (a *staticADC) Disable()                {}

func (a *staticADC) Result() uint16 {
	switch a.selected {
	case ChannelPotentiometer:
		return a.pot
	case ChannelButtons:
		return a.buttons
	default:
		return a.bandgap
	}
}

type quietPower struct {
	adc *staticADC
}

func (p *quietPower) DisableAll()           {}
func (p *quietPower) Enable(Peripheral)     {}
func (p *quietPower) Delay(d time.Duration) {}

func (p *quietPower) Sleep(mode SleepMode) WakeSource {
	if mode == SleepADCNoiseReduction {
		p.adc.busy = false
		return WakeADC
	}
	return WakeWatchdog
}

type quietWatchdog struct{}

func (quietWatchdog) Arm()    {}
func (quietWatchdog) Disarm() {}

type quietDecoder struct{}

func (quietDecoder) Begin() error                            { return nil }
func (quietDecoder) SetVolume(uint8) error                   { return nil }
func (quietDecoder) PlayFolder(uint8, uint8) error           { return nil }
func (quietDecoder) Pause() error                            { return nil }
func (quietDecoder) Resume() error                           { return nil }
func (quietDecoder) Sleep() error                            { return nil }
func (quietDecoder) FolderCount() (uint16, error)            { return 3, nil }
func (quietDecoder) FileCountInFolder(uint8) (uint16, error) { return 5, nil }
func (quietDecoder) Poll() (DecoderEvent, bool)              { return DecoderEvent{}, false }

type nopDisplay struct {
	printed int
}

func (d *nopDisplay) SetCursor(col, row uint8) {}
func (d *nopDisplay) PrintText(text []byte)    { d.printed += len(text) }
func (d *nopDisplay) SetContrast(uint8)        {}
func (d *nopDisplay) ClearBuffer()             {}
func (d *nopDisplay) SwapFrame() error         { return nil }

type memStore struct {
	mem [16]byte
}

func (s *memStore) Get(addr uint16) byte       { return s.mem[addr] }
func (s *memStore) Update(addr uint16, b byte) { s.mem[addr] = b }

func TestRenderNoAllocs(t *testing.T) {
	cfg := DefaultConfig()
	d := &nopDisplay{}
	state := &PlayerState{
		Session:     PlayerSession{Folder: 3, File: 7, Volume: 15},
		Battery:     BatteryState{LevelPercent: 61},
		FolderCount: 12,
		FileCount:   25,
	}
	var p Presenter

	allocs := testing.AllocsPerRun(100, func() {
		state.Session.Paused = !state.Session.Paused
		p.Render(d, state, &cfg)
	})
	if allocs != 0 {
		t.Errorf("Expected no allocations, got %v per render", allocs)
	}
	if d.printed == 0 {
		t.Error("Nothing was drawn")
	}
}

func TestStepNoAllocs(t *testing.T) {
	adc := &staticADC{pot: 340, buttons: AnalogMax, bandgap: 300}
	d := &nopDisplay{}
	fw := NewFirmware(Peripherals{
		ADC:      adc,
		Power:    &quietPower{adc: adc},
		Watchdog: quietWatchdog{},
		Decoder:  quietDecoder{},
		Display:  d,
		Store:    &memStore{},
	}, DefaultConfig())

	state := fw.State()
	state.Session = PlayerSession{Folder: 1, File: 1, Volume: 10}
	state.FolderCount, state.FileCount = 3, 5
	state.PotTracked = 340
	state.Battery.LevelPercent = 61

	// Every step moves the volume and runs a battery check, so the
	// screen is redrawn each time.
	allocs := testing.AllocsPerRun(100, func() {
		if adc.pot == 340 {
			adc.pot = 700
		} else {
			adc.pot = 340
		}
		state.Battery.SinceLastCheck = 1
		fw.Step()
	})
	if allocs != 0 {
		t.Errorf("Expected no allocations, got %v per step", allocs)
	}
	if d.printed == 0 {
		t.Error("Volume changes did not redraw the screen")
	}
}
