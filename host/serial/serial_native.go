package serial

import (
	"errors"
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// ErrNoConfig is returned by Open without a configuration
var ErrNoConfig = errors.New("serial: no config")

// NativePort is a host serial device opened through tarm/serial
type NativePort struct {
	port *serial.Port
	name string
}

// Open opens the device named in cfg with the DFPlayer line format, 8N1
func Open(cfg *Config) (*NativePort, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}

	return &NativePort{port: port, name: cfg.Device}, nil
}

func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Flush discards data the driver has received but nobody has read yet
func (p *NativePort) Flush() error {
	if err := p.port.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", p.name, err)
	}
	return nil
}

func (p *NativePort) Close() error {
	return p.port.Close()
}
