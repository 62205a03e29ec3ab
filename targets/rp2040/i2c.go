//go:build rp2040

package main

import (
	"fmt"
	"machine"

	"github.com/cristibctr/notnyan-keys-right/core"
)

// i2cTarget implements core.BusSlaveDriver on the RP2040 hardware I2C
// in target mode. The left half is the bus controller; this side only
// answers reads addressed to it.
type i2cTarget struct {
	bus  *machine.I2C
	addr uint8
	ev   core.BusEvents
	tx   []byte
	rx   []byte
}

func newI2CTarget(bus *machine.I2C, addr uint8) *i2cTarget {
	return &i2cTarget{bus: bus, addr: addr}
}

func (d *i2cTarget) SetEvents(ev core.BusEvents) {
	d.ev = ev
}

// ArmTransmit records the buffer the next I2CRequest replies with.
// Called only from inside event callbacks or before listen starts, so
// there is no concurrent access to d.tx.
func (d *i2cTarget) ArmTransmit(buf []byte) error {
	d.tx = buf
	return nil
}

// ArmReceive records the landing zone for controller writes. It stays
// armed across transfers.
func (d *i2cTarget) ArmReceive(buf []byte) error {
	d.rx = buf
	return nil
}

// listen configures target mode and dispatches peripheral events. All
// core callbacks run on this goroutine, one at a time, which preserves
// the run-to-completion rebuild of the report buffer. Returns only if
// the peripheral cannot be brought up.
func (d *i2cTarget) listen() error {
	if err := d.bus.Configure(machine.I2CConfig{Mode: machine.I2CModeTarget}); err != nil {
		return fmt.Errorf("configure i2c target: %w", err)
	}
	if err := d.bus.Listen(uint16(d.addr)); err != nil {
		return fmt.Errorf("listen on %#02x: %w", d.addr, err)
	}

	var buf [8]byte
	for {
		evt, n, err := d.bus.WaitForEvent(buf[:])
		if err != nil {
			if d.ev.Error != nil {
				d.ev.Error(err)
			}
			continue
		}

		switch evt {
		case machine.I2CReceive:
			if d.rx != nil && n > 0 {
				copy(d.rx, buf[:n])
			}
			if d.ev.ReceiveComplete != nil {
				d.ev.ReceiveComplete()
			}
		case machine.I2CRequest:
			// The responder re-armed after the previous transfer, so
			// d.tx already holds a freshly encoded report.
			if err := d.bus.Reply(d.tx); err != nil {
				if d.ev.Error != nil {
					d.ev.Error(err)
				}
			}
		case machine.I2CFinish:
			if d.ev.TransferComplete != nil {
				d.ev.TransferComplete()
			}
		}
	}
}
