//go:build linux && !tinygo

// Development build of the right-half firmware for Linux SBCs: the key
// switches hang off the GPIO character device and the bus link to the
// left half is bridged over a serial port.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/tarm/serial"

	"github.com/cristibctr/notnyan-keys-right/core"
)

// Development rig wiring: 24 switches on the first 24 lines of one
// GPIO bank, key i on line i.
const numKeys = 24

func rigKeyMap() (core.KeyMap, map[core.PortID][]int) {
	keys := make(core.KeyMap, numKeys)
	offsets := make([]int, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = core.Key{Port: 0, Mask: 1 << i}
		offsets[i] = i
	}
	return keys, map[core.PortID][]int{0: offsets}
}

// monotonicMillis is the core.Clock for this target.
var started = time.Now()

func monotonicMillis() uint32 {
	return uint32(time.Since(started).Milliseconds())
}

// bridgePortConfig leaves ReadTimeout at zero so reads block. With a
// timeout set, tarm hands a quiet link back as a zero-byte EOF read
// and serve would take an idle master for a dead one.
func bridgePortConfig(device string, baud int) *serial.Config {
	return &serial.Config{Name: device, Baud: baud}
}

func main() {
	device := flag.String("device", "/dev/ttyUSB0", "serial device bridging the bus link")
	baud := flag.Int("baud", 115200, "serial baud rate")
	chipName := flag.String("gpiochip", "gpiochip0", "GPIO character device with the key switches")
	window := flag.Uint("debounce", core.DefaultDebounceWindow, "debounce window in milliseconds")
	maxPressed := flag.Int("max-pressed", core.DefaultMaxPressed, "pressed keys resolved per report, 0 for all")
	flag.Parse()

	keys, ports := rigKeyMap()

	driver, err := newChipPortDriver(*chipName, ports)
	if err != nil {
		log.Fatalf("gpio: %v", err)
	}
	defer driver.Close()

	if err := keys.Configure(driver); err != nil {
		log.Fatalf("gpio bring-up: %v", err)
	}

	scanner, err := core.NewScanner(driver, keys, uint32(*window))
	if err != nil {
		log.Fatalf("scanner: %v", err)
	}

	port, err := serial.OpenPort(bridgePortConfig(*device, *baud))
	if err != nil {
		log.Fatalf("serial: %v", err)
	}
	defer port.Close()

	bus := newSerialBus(port)
	responder := core.NewResponder(scanner, bus, monotonicMillis, *maxPressed)
	if err := responder.Start(); err != nil {
		log.Fatalf("responder: %v", err)
	}

	log.Printf("serving %d-key reports on %s", numKeys, *device)
	if err := bus.serve(); err != nil {
		log.Fatalf("serial link closed: %v (recovered %d transient faults)", err, responder.Errors())
	}
}
