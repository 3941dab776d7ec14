package core

// Status screen geometry, in character cells.
const (
	ScreenColumns = 21
	ScreenRows    = 4

	rowTitle  = 0
	rowFolder = 1
	rowFile   = 2
	rowStatus = 3

	colValue  = 8  // first column of "NNN of NNN"
	colVolume = 10 // right half of the status line

	numberWidth = 3
)

// lineBuffer formats one piece of screen text in place. Text past the
// screen width is clipped.
type lineBuffer struct {
	buf [ScreenColumns]byte
	n   int
}

func (l *lineBuffer) reset() {
	l.n = 0
}

func (l *lineBuffer) text(s string) *lineBuffer {
	l.n += copy(l.buf[l.n:], s)
	return l
}

// number appends n right-aligned in a numberWidth field
func (l *lineBuffer) number(n uint32) *lineBuffer {
	var tmp [numberWidth + 10]byte
	l.n += copy(l.buf[l.n:], appendPadded(tmp[:0], n, numberWidth))
	return l
}

func (l *lineBuffer) bytes() []byte {
	return l.buf[:l.n]
}

// Presenter draws the status and error screens. Every line is formatted in
// its own buffer, so drawing a frame never allocates.
type Presenter struct {
	line lineBuffer
}

// Render draws the status screen for state and swaps it onto the display.
// The frame is always redrawn in full.
func (p *Presenter) Render(d Display, state *PlayerState, cfg *Config) error {
	d.ClearBuffer()

	p.put(d, 0, rowTitle).text(cfg.Title)
	p.flush(d)

	p.put(d, 0, rowFolder).text("Folder:")
	p.flush(d)
	p.put(d, colValue, rowFolder).ofCount(uint32(state.Session.Folder), uint32(state.FolderCount))
	p.flush(d)

	p.put(d, 0, rowFile).text("File:")
	p.flush(d)
	p.put(d, colValue, rowFile).ofCount(uint32(state.Session.File), uint32(state.FileCount))
	p.flush(d)

	p.put(d, 0, rowStatus).text("Bat:").number(uint32(state.Battery.LevelPercent)).text("%")
	p.flush(d)
	if state.Session.Paused {
		p.put(d, colVolume, rowStatus).text("< Pause >")
	} else {
		p.put(d, colVolume, rowStatus).text("Volume:").number(uint32(state.Session.Volume))
	}
	p.flush(d)

	return d.SwapFrame()
}

// RenderError draws a fixed message screen, one line per row.
func (p *Presenter) RenderError(d Display, lines ...string) error {
	d.ClearBuffer()
	for i, line := range lines {
		p.put(d, 0, uint8(i)).text(line)
		p.flush(d)
	}
	return d.SwapFrame()
}

// put moves the cursor and starts a new piece of text
func (p *Presenter) put(d Display, col, row uint8) *lineBuffer {
	d.SetCursor(col, row)
	p.line.reset()
	return &p.line
}

func (p *Presenter) flush(d Display) {
	d.PrintText(p.line.bytes())
}

func (l *lineBuffer) ofCount(n, count uint32) *lineBuffer {
	return l.number(n).text(" of ").number(count)
}
