package player

import (
	"fmt"
	"io"
	"strings"

	"tinydfplayer/core"
)

// Screen geometry of the 128x32 OLED in characters
const (
	ScreenColumns = core.ScreenColumns
	ScreenRows    = core.ScreenRows
)

// TextScreen implements core.Display as a character grid so the firmware's
// screens can be previewed on a terminal
type TextScreen struct {
	grid     [ScreenRows][ScreenColumns]byte
	frame    [ScreenRows]string
	col, row int
	contrast uint8
}

func NewTextScreen() *TextScreen {
	s := &TextScreen{contrast: 255}
	s.ClearBuffer()
	return s
}

func (s *TextScreen) SetCursor(col, row uint8) {
	s.col = int(col)
	s.row = int(row)
}

// PrintText writes text at the cursor, clipping at the panel edge
func (s *TextScreen) PrintText(text []byte) {
	if s.row >= ScreenRows {
		return
	}
	for i := 0; i < len(text) && s.col < ScreenColumns; i++ {
		s.grid[s.row][s.col] = text[i]
		s.col++
	}
}

func (s *TextScreen) SetContrast(level uint8) {
	s.contrast = level
}

func (s *TextScreen) ClearBuffer() {
	for r := range s.grid {
		for c := range s.grid[r] {
			s.grid[r][c] = ' '
		}
	}
}

func (s *TextScreen) SwapFrame() error {
	for r := range s.grid {
		s.frame[r] = strings.TrimRight(string(s.grid[r][:]), " ")
	}
	return nil
}

// Lines returns the last swapped frame
func (s *TextScreen) Lines() []string {
	return s.frame[:]
}

// Print draws the last frame inside a border
func (s *TextScreen) Print(w io.Writer) {
	border := "+" + strings.Repeat("-", ScreenColumns) + "+"
	fmt.Fprintln(w, border)
	for _, line := range s.frame {
		fmt.Fprintf(w, "|%-*s|\n", ScreenColumns, line)
	}
	fmt.Fprintln(w, border)
	if s.contrast == 0 {
		fmt.Fprintln(w, "(dimmed)")
	}
}
