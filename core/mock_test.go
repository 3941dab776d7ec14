package core

import (
	"strconv"
	"strings"
	"time"
)

// mockADC returns scripted conversion results per channel. When a channel's
// script runs out, its last value repeats.
type mockADC struct {
	samples     map[AnalogChannel][]uint16
	last        map[AnalogChannel]uint16
	conversions map[AnalogChannel]int

	selected AnalogChannel
	enabled  bool
	busy     int // Busy polls left for the running conversion
	convTime int
	result   uint16
	disables int
}

func newMockADC() *mockADC {
	return &mockADC{
		samples: make(map[AnalogChannel][]uint16),
		last: map[AnalogChannel]uint16{
			ChannelPotentiometer: 340,  // volume 10
			ChannelButtons:       1023, // released
			ChannelBandgap:       300,  // 3751mV, 61%
		},
		conversions: make(map[AnalogChannel]int),
		convTime:    1,
	}
}

func (m *mockADC) queue(ch AnalogChannel, values ...uint16) {
	m.samples[ch] = append(m.samples[ch], values...)
}

func (m *mockADC) Enable() { m.enabled = true }

func (m *mockADC) Select(ch AnalogChannel) { m.selected = ch }

func (m *mockADC) Start() {
	if !m.enabled {
		panic("conversion started with ADC disabled")
	}
	m.busy = m.convTime
	m.conversions[m.selected]++

	if q := m.samples[m.selected]; len(q) > 0 {
		m.result = q[0]
		m.samples[m.selected] = q[1:]
		m.last[m.selected] = m.result
		return
	}
	m.result = m.last[m.selected]
}

func (m *mockADC) Busy() bool { return m.busy > 0 }

func (m *mockADC) Result() uint16 { return m.result }

func (m *mockADC) Disable() {
	m.enabled = false
	m.disables++
}

// mockWatchdog records arming.
type mockWatchdog struct {
	armed bool
	arms  int
}

func (w *mockWatchdog) Arm() {
	w.armed = true
	w.arms++
}

func (w *mockWatchdog) Disarm() { w.armed = false }

// mockPower completes ADC conversions during noise reduction sleep and
// wakes from power-down through the watchdog.
type mockPower struct {
	adc      *mockADC
	watchdog *mockWatchdog
	decoder  *mockDecoder

	enabled    map[Peripheral]bool
	disableAll int
	sleeps     map[SleepMode]int
	delays     []time.Duration
	spurious   int // ADC wakes delivered during power-down before the watchdog fires
}

func newMockPower(adc *mockADC, watchdog *mockWatchdog) *mockPower {
	return &mockPower{
		adc:      adc,
		watchdog: watchdog,
		enabled:  make(map[Peripheral]bool),
		sleeps:   make(map[SleepMode]int),
	}
}

func (p *mockPower) DisableAll() {
	p.disableAll++
	if p.decoder != nil && p.enabled[PeripheralSerial] {
		p.decoder.delivered = len(p.decoder.commands)
	}
	for k := range p.enabled {
		p.enabled[k] = false
	}
}

func (p *mockPower) Enable(per Peripheral) { p.enabled[per] = true }

func (p *mockPower) Sleep(mode SleepMode) WakeSource {
	p.sleeps[mode]++
	if mode == SleepADCNoiseReduction {
		if p.adc.busy > 0 {
			p.adc.busy--
		}
		return WakeADC
	}

	if p.spurious > 0 {
		p.spurious--
		return WakeADC
	}
	if !p.watchdog.armed {
		panic("power-down sleep without watchdog armed")
	}
	return WakeWatchdog
}

func (p *mockPower) Delay(d time.Duration) { p.delays = append(p.delays, d) }

// mockDecoder records the commands it receives. A command counts as
// delivered only once the power controller has drained the serial link.
type mockDecoder struct {
	power     *mockPower
	delivered int      // commands drained onto the wire
	unpowered []string // commands written with the serial link off

	beginErr error
	folders  uint16
	files    map[uint8]uint16
	events   []DecoderEvent
	commands []string
	queries  []string
}

func newMockDecoder() *mockDecoder {
	return &mockDecoder{
		folders: 3,
		files:   map[uint8]uint16{1: 5, 2: 3, 3: 12},
	}
}

func (d *mockDecoder) Begin() error {
	d.send("begin")
	return d.beginErr
}

func (d *mockDecoder) SetVolume(volume uint8) error {
	d.send("volume " + strconv.Itoa(int(volume)))
	return nil
}

func (d *mockDecoder) PlayFolder(folder, file uint8) error {
	d.send("play " + strconv.Itoa(int(folder)) + "/" + strconv.Itoa(int(file)))
	return nil
}

func (d *mockDecoder) Pause() error {
	d.send("pause")
	return nil
}

func (d *mockDecoder) Resume() error {
	d.send("resume")
	return nil
}

func (d *mockDecoder) Sleep() error {
	d.send("sleep")
	return nil
}

func (d *mockDecoder) FolderCount() (uint16, error) {
	d.queries = append(d.queries, "folders")
	return d.folders, nil
}

func (d *mockDecoder) FileCountInFolder(folder uint8) (uint16, error) {
	d.queries = append(d.queries, "files "+strconv.Itoa(int(folder)))
	return d.files[folder], nil
}

func (d *mockDecoder) Poll() (DecoderEvent, bool) {
	if len(d.events) == 0 {
		return DecoderEvent{}, false
	}
	e := d.events[0]
	d.events = d.events[1:]
	return e, true
}

func (d *mockDecoder) send(cmd string) {
	if d.power != nil && !d.power.enabled[PeripheralSerial] {
		d.unpowered = append(d.unpowered, cmd)
	}
	d.commands = append(d.commands, cmd)
}

func (d *mockDecoder) reset() {
	d.delivered = 0
	d.unpowered = nil
	d.commands = nil
	d.queries = nil
}

func (d *mockDecoder) commandList() string {
	return strings.Join(d.commands, ", ")
}

const mockDisplayCols = 32

// mockDisplay keeps a character grid and the last swapped frame.
type mockDisplay struct {
	buffer    [8][mockDisplayCols]byte
	frame     [8]string
	col, row  uint8
	contrasts []uint8
	swaps     int
}

func newMockDisplay() *mockDisplay {
	d := &mockDisplay{}
	d.ClearBuffer()
	return d
}

func (d *mockDisplay) SetCursor(col, row uint8) {
	d.col = col
	d.row = row
}

func (d *mockDisplay) PrintText(text []byte) {
	for i := 0; i < len(text) && int(d.col) < mockDisplayCols; i++ {
		d.buffer[d.row][d.col] = text[i]
		d.col++
	}
}

func (d *mockDisplay) SetContrast(level uint8) {
	d.contrasts = append(d.contrasts, level)
}

func (d *mockDisplay) ClearBuffer() {
	for r := range d.buffer {
		for c := range d.buffer[r] {
			d.buffer[r][c] = ' '
		}
	}
}

func (d *mockDisplay) SwapFrame() error {
	for r := range d.buffer {
		d.frame[r] = strings.TrimRight(string(d.buffer[r][:]), " ")
	}
	d.swaps++
	return nil
}

// mockStore is an EEPROM that counts physical writes.
type mockStore struct {
	mem    [16]byte
	writes int
}

func (s *mockStore) Get(addr uint16) byte { return s.mem[addr] }

func (s *mockStore) Update(addr uint16, b byte) {
	if s.mem[addr] == b {
		return
	}
	s.mem[addr] = b
	s.writes++
}

// testRig is a Firmware wired to mock peripherals.
type testRig struct {
	adc      *mockADC
	watchdog *mockWatchdog
	power    *mockPower
	decoder  *mockDecoder
	display  *mockDisplay
	store    *mockStore
	fw       *Firmware
}

func newTestRig() *testRig {
	r := &testRig{
		adc:      newMockADC(),
		watchdog: &mockWatchdog{},
		decoder:  newMockDecoder(),
		display:  newMockDisplay(),
		store:    &mockStore{},
	}
	r.power = newMockPower(r.adc, r.watchdog)
	r.power.decoder = r.decoder
	r.decoder.power = r.power
	r.fw = NewFirmware(Peripherals{
		ADC:      r.adc,
		Power:    r.power,
		Watchdog: r.watchdog,
		Decoder:  r.decoder,
		Display:  r.display,
		Store:    r.store,
	}, DefaultConfig())
	return r
}

// playing puts the rig into a started state at folder/file without going through Start.
func (r *testRig) playing(folder, file uint8) *PlayerState {
	state := r.fw.State()
	state.Session = PlayerSession{Folder: folder, File: file, Volume: 10}
	state.FolderCount = r.decoder.folders
	state.FileCount = r.decoder.files[folder]
	state.PotTracked = 340
	state.Battery = BatteryState{LevelPercent: 61, SinceLastCheck: 600}
	return state
}
