package core

// Clock returns the current value of a free-running millisecond
// counter. The counter is 32-bit and wraps; every comparison against it
// goes through ticksReached so a wrap is harmless.
type Clock func() uint32

// ticksReached reports whether now is at or past deadline on the
// wrapping counter. Correct as long as the two instants are within half
// the counter range of each other, which a 10ms debounce window is by a
// wide margin.
func ticksReached(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}
