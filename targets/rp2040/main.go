//go:build rp2040

// Right-half firmware for RP2040 boards: scans the 24 key switches and
// serves debounced key-state reports to the left half over I2C.
package main

import (
	"machine"
	"time"

	"github.com/cristibctr/notnyan-keys-right/core"
)

func main() {
	driver := sioPortDriver{}
	if err := rightKeys.Configure(driver); err != nil {
		fatal("gpio bring-up", err)
	}

	scanner, err := core.NewScanner(driver, rightKeys, core.DefaultDebounceWindow)
	if err != nil {
		fatal("scanner", err)
	}

	bus := newI2CTarget(machine.I2C0, i2cAddress)
	responder := core.NewResponder(scanner, bus, millis, core.DefaultMaxPressed)
	if err := responder.Start(); err != nil {
		fatal("responder", err)
	}

	for {
		// listen only returns when the peripheral cannot be brought
		// up; transfer faults are handled inside via the responder.
		if err := bus.listen(); err != nil {
			println("i2c:", err.Error())
			time.Sleep(100 * time.Millisecond)
		}
	}
}

func fatal(what string, err error) {
	for {
		println(what, "failed:", err.Error())
		time.Sleep(time.Second)
	}
}
