//go:build rp2040

package main

import "github.com/cristibctr/notnyan-keys-right/core"

// I2C address the left half addresses its reads to.
const i2cAddress = 0x42

// gp returns the key entry for one GPIO on the single RP2040 bank.
func gp(pin int) core.Key {
	return core.Key{Port: gpioPort, Mask: 1 << pin}
}

// rightKeys is the static right-half key table, in report order.
// GPIO0-11 carry the keys the STM32 board had on port A, GPIO12-23 the
// port B keys.
var rightKeys = core.KeyMap{
	gp(0), gp(1), gp(2), gp(3), // keys 0-3
	gp(4), gp(5), gp(6), gp(7), // keys 4-7
	gp(8), gp(9), gp(10), gp(11), // keys 8-11
	gp(12), gp(13), gp(14), gp(15), // keys 12-15
	gp(16), gp(17), gp(18), gp(19), // keys 16-19
	gp(20), gp(21), gp(22), gp(23), // keys 20-23
}
