//go:build avr && atmega328p

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Text grid on the 128x32 panel: 21 columns by 4 rows
const (
	displayWidth   = 128
	displayHeight  = 32
	displayAddress = 0x3C

	charWidth  = 6
	lineHeight = 8
	baseline   = 6
)

var white = color.RGBA{255, 255, 255, 255}

// OLEDDisplay implements core.Display on an SSD1306 with the proggy font
type OLEDDisplay struct {
	dev      ssd1306.Device
	col, row int16
}

func NewOLEDDisplay(bus *machine.I2C) *OLEDDisplay {
	d := &OLEDDisplay{dev: ssd1306.NewI2C(bus)}
	d.dev.Configure(ssd1306.Config{
		Width:    displayWidth,
		Height:   displayHeight,
		Address:  displayAddress,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	d.dev.ClearDisplay()
	return d
}

func (d *OLEDDisplay) SetCursor(col, row uint8) {
	d.col = int16(col)
	d.row = int16(row)
}

// PrintText draws text at the cursor and advances it. Characters are drawn
// one at a time on the fixed grid, which avoids a string conversion.
func (d *OLEDDisplay) PrintText(text []byte) {
	y := d.row*lineHeight + baseline
	for _, c := range text {
		tinyfont.DrawChar(&d.dev, &proggy.TinySZ8pt7b, d.col*charWidth, y, rune(c), white)
		d.col++
	}
}

func (d *OLEDDisplay) SetContrast(level uint8) {
	d.dev.Command(ssd1306.SETCONTRAST)
	d.dev.Command(level)
}

func (d *OLEDDisplay) ClearBuffer() {
	d.dev.ClearBuffer()
}

func (d *OLEDDisplay) SwapFrame() error {
	return d.dev.Display()
}
