//go:build rp2040

package main

import (
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"

	"github.com/cristibctr/notnyan-keys-right/core"
)

// gpioPort is the single RP2040 GPIO bank.
const gpioPort core.PortID = 0

// RP2040 SIO memory map: GPIO_IN holds the current level of all 30
// GPIOs, so a scan costs one register read for the whole bank.
const (
	sioBase   = 0xD0000000
	sioGPIOIn = sioBase + 0x004
)

var gpioIn = (*volatile.Register32)(unsafe.Pointer(uintptr(sioGPIOIn)))

// sioPortDriver implements core.PortDriver with a single SIO register
// read per scan pass.
type sioPortDriver struct{}

func (sioPortDriver) ConfigureInputPullUp(port core.PortID, mask uint32) error {
	if port != gpioPort {
		return errors.New("rp2040 has a single GPIO bank")
	}
	for pin := 0; pin < 30; pin++ {
		if mask&(1<<pin) == 0 {
			continue
		}
		machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return nil
}

func (sioPortDriver) ReadPort(port core.PortID) uint32 {
	return gpioIn.Get()
}
