// Package expander implements the port-reader capability on PCF8575
// 16-bit I2C port expanders, for right-half boards that hang their
// switches off the I2C bus instead of MCU pins.
//
// The PCF8575 has no registers: a 2-byte write (LSB first) sets the
// quasi-bidirectional latch, a 2-byte read returns the pin levels.
// Writing 1 releases a pin and enables its weak pull-up, which is
// exactly the input mode an active-low key needs.
//
// Datasheet: https://www.ti.com/lit/ds/symlink/pcf8575.pdf
package expander

import (
	"fmt"

	"tinygo.org/x/drivers"

	"github.com/cristibctr/notnyan-keys-right/core"
)

// DefaultAddress is the PCF8575 base address with A0..A2 grounded.
const DefaultAddress = 0x20

// allReleased is the level a port reads at when every pull-up wins.
const allReleased = 0xFFFF

// Ports exposes one or more PCF8575 devices as core ports: the
// core.PortID is the index into the device address list. One scan costs
// one 2-byte I2C read per device.
type Ports struct {
	bus    drivers.I2C
	addrs  []uint16
	faults uint32
}

// New builds a port driver over a preconfigured I2C bus. Each address
// becomes one 16-bit port, in order.
func New(bus drivers.I2C, addrs ...uint16) *Ports {
	if len(addrs) == 0 {
		addrs = []uint16{DefaultAddress}
	}
	return &Ports{bus: bus, addrs: addrs}
}

// ConfigureInputPullUp releases the whole latch so every pin floats
// high behind its weak pull-up. The mask is accepted for interface
// symmetry; releasing unused pins too is harmless on this chip.
func (p *Ports) ConfigureInputPullUp(port core.PortID, mask uint32) error {
	if int(port) >= len(p.addrs) {
		return fmt.Errorf("pcf8575: port %d not mapped to a device", port)
	}
	buf := [2]byte{0xFF, 0xFF}
	if err := p.bus.Tx(p.addrs[port], buf[:], nil); err != nil {
		return fmt.Errorf("pcf8575 addr %#02x: release latch: %w", p.addrs[port], err)
	}
	return nil
}

// ReadPort reads all 16 pin levels of one device in a single
// transaction. Sampling is infallible by contract: a dropped
// transaction degrades to the all-released level the pull-ups would
// give, and the fault counter keeps the trace.
func (p *Ports) ReadPort(port core.PortID) uint32 {
	if int(port) >= len(p.addrs) {
		return allReleased
	}
	var buf [2]byte
	if err := p.bus.Tx(p.addrs[port], nil, buf[:]); err != nil {
		p.faults++
		return allReleased
	}
	return uint32(buf[0]) | uint32(buf[1])<<8
}

// Faults returns how many reads degraded to the all-released level.
func (p *Ports) Faults() uint32 {
	return p.faults
}
