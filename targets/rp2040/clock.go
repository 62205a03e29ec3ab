//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 timer peripheral: a 64-bit free-running microsecond counter.
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08
	timerTIMERAWL = timerBase + 0x0C
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// microsUptime reads the full 64-bit counter. High word first, then
// low, then high again to detect a rollover mid-read.
func microsUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// millis is the core.Clock for this target: the microsecond counter
// scaled to milliseconds, truncated to the 32-bit wrapping width the
// debounce arithmetic expects.
func millis() uint32 {
	return uint32(microsUptime() / 1000)
}
