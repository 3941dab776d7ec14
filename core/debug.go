package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures a player event for post-mortem analysis
type TraceEvent struct {
	EventType uint8  // Event type code
	Tick      uint32 // Watchdog tick at event
	Value1    uint16 // Context-dependent value
	Value2    uint16 // Context-dependent value
}

// Event type codes
const (
	EvtButton        = 1 // Button event decoded (v1=event)
	EvtTrackFinished = 2 // Decoder reported end of track (v1=track)
	EvtPlay          = 3 // Play command issued (v1=folder, v2=file)
	EvtVolume        = 4 // Volume changed (v1=volume)
	EvtBattery       = 5 // Battery checked (v1=percent, v2=mV)
	EvtLockout       = 6 // Low battery lockout entered (v1=percent)
	EvtDecoderError  = 7 // Decoder command failed
)

const (
	TraceRingSize = 16 // Keep last 16 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Event capture ring buffer (non-blocking, for post-mortem)
	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// debugError logs err with a prefix. The message is only built when debug
// output is on, so the error paths stay allocation free otherwise.
func debugError(prefix string, err error) {
	if debugEnabled {
		DebugPrintln(prefix + err.Error())
	}
}

// RecordEvent captures an event in the ring buffer
func RecordEvent(eventType uint8, tick uint32, value1, value2 uint16) {
	idx := traceRingHead
	traceRing[idx] = TraceEvent{
		EventType: eventType,
		Tick:      tick,
		Value1:    value1,
		Value2:    value2,
	}
	traceRingHead = (idx + 1) % TraceRingSize
}

// DumpTraceRing outputs the event ring, oldest first
func DumpTraceRing() {
	if !debugEnabled || debugPrintln == nil {
		return
	}

	debugPrintln("[TRACE] === Event Ring Dump ===")

	start := traceRingHead
	for i := uint8(0); i < TraceRingSize; i++ {
		idx := (start + i) % TraceRingSize
		evt := &traceRing[idx]
		if evt.EventType == 0 {
			continue // Empty slot
		}

		debugPrintln("[TRACE] " + eventName(evt.EventType) +
			" tick=" + utoa(evt.Tick) +
			" v1=" + utoa(uint32(evt.Value1)) +
			" v2=" + utoa(uint32(evt.Value2)))
	}
	debugPrintln("[TRACE] === End Dump ===")
}

// ClearTraceRing clears the event buffer
func ClearTraceRing() {
	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
}

func eventName(eventType uint8) string {
	switch eventType {
	case EvtButton:
		return "BUTTON"
	case EvtTrackFinished:
		return "TRACK_DONE"
	case EvtPlay:
		return "PLAY"
	case EvtVolume:
		return "VOLUME"
	case EvtBattery:
		return "BATTERY"
	case EvtLockout:
		return "LOCKOUT!"
	case EvtDecoderError:
		return "DECODER_ERR"
	default:
		return "UNKNOWN"
	}
}
