// Package serial wraps the host-side serial link to the keyboard half.
// The abstraction keeps the tools testable with an in-memory port.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is the byte link to the keyboard half.
type Port interface {
	io.ReadWriteCloser
}

// Config holds the link settings.
type Config struct {
	// Device path, e.g. "/dev/ttyUSB0".
	Device string

	// Baud rate of the bridge.
	Baud int

	// ReadTimeout bounds a single read; 0 blocks.
	ReadTimeout time.Duration
}

// DefaultConfig returns the settings the serial bridge uses.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 500 * time.Millisecond,
	}
}

// Open opens the native serial port behind the link.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}
	return port, nil
}
