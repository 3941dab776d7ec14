package core

import "time"

// AnalogChannel identifies a logical ADC source.
type AnalogChannel uint8

const (
	ChannelPotentiometer AnalogChannel = iota
	ChannelButtons
	// ChannelBandgap is the internal 1.1V reference measured against the supply rail.
	ChannelBandgap
)

// AnalogMax is the largest value a 10-bit conversion can return.
const AnalogMax = 1023

// AnalogConverter is the abstract ADC interface that core code uses.
// Implementations must not keep the converter powered between Enable and Disable.
type AnalogConverter interface {
	// Enable sets the converter enable bit. The ADC clock domain must already be powered.
	Enable()

	// Select routes the channel (and its reference) to the converter.
	Select(ch AnalogChannel)

	// Start starts one conversion with the conversion-complete interrupt armed.
	Start()

	// Busy reports whether the running conversion has not completed yet.
	Busy() bool

	// Result returns the last 10-bit conversion result (0..1023).
	Result() uint16

	// Disable clears the enable bit and removes power from the converter.
	Disable()
}

// WakeSource names the interrupt that ended a sleep.
type WakeSource uint8

const (
	WakeNone WakeSource = iota
	WakeWatchdog
	WakeADC
)

// SleepMode selects how deep the CPU sleeps.
type SleepMode uint8

const (
	// SleepPowerDown stops every clock; only the watchdog can wake the CPU.
	SleepPowerDown SleepMode = iota
	// SleepADCNoiseReduction halts the CPU and I/O clocks but keeps the ADC running.
	SleepADCNoiseReduction
)

// Peripheral identifies an on-chip peripheral clock domain.
type Peripheral uint8

const (
	PeripheralSerial Peripheral = iota
	PeripheralTimers
	PeripheralADC
	PeripheralI2C
)

// PowerController gates peripheral power and puts the CPU to sleep.
type PowerController interface {
	// DisableAll removes power from every peripheral not required for wakeup.
	// Bytes already handed to the serial port are sent before it is gated.
	DisableAll()

	// Enable powers up a single peripheral.
	Enable(p Peripheral)

	// Sleep halts the CPU in the given mode and returns the interrupt that woke it.
	Sleep(mode SleepMode) WakeSource

	// Delay waits without entering power-down.
	Delay(d time.Duration)
}

// WatchdogTimer is the sleep-wake clock. It is armed in interrupt mode for a
// fixed short interval and disarms itself when its interrupt fires.
type WatchdogTimer interface {
	Arm()
	Disarm()
}

// DecoderEventType is the notification kind reported by the audio decoder.
type DecoderEventType uint8

const (
	DecoderEventNone DecoderEventType = iota
	DecoderTrackFinished
	DecoderCardInserted
	DecoderCardRemoved
	DecoderError
)

// DecoderEvent is an asynchronous notification from the audio decoder.
type DecoderEvent struct {
	Type  DecoderEventType
	Value uint16
}

// AudioDecoder is the external audio-decoding module.
type AudioDecoder interface {
	// Begin performs the initialization handshake.
	Begin() error

	SetVolume(volume uint8) error
	PlayFolder(folder, file uint8) error
	Pause() error
	Resume() error

	// Sleep forces the module into its low-power state.
	Sleep() error

	FolderCount() (uint16, error)
	FileCountInFolder(folder uint8) (uint16, error)

	// Poll returns a pending notification without blocking.
	Poll() (DecoderEvent, bool)
}

// Display is the status screen. Text is placed on a character grid and the
// frame becomes visible only on SwapFrame.
type Display interface {
	SetCursor(col, row uint8)

	// PrintText draws text at the cursor. text is only valid for the call.
	PrintText(text []byte)
	SetContrast(level uint8)
	ClearBuffer()
	SwapFrame() error
}

// ByteStore is byte-addressed non-volatile storage.
type ByteStore interface {
	Get(addr uint16) byte

	// Update writes b only if it differs from the stored value.
	Update(addr uint16, b byte)
}
