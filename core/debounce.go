package core

// keyState is the per-key debounce record: the last accepted logical
// state and the instant until which further transitions are ignored.
type keyState struct {
	pressed      bool
	lockoutUntil uint32
}

// step feeds one raw sample through the edge-triggered lockout policy:
// the first clean edge is accepted immediately, then every transition
// on the key, bounce or real, is refused until the lockout expires.
// Zero latency on the edge, bounded worst-case settle time after it.
func (k *keyState) step(raw bool, now, window uint32) {
	if raw != k.pressed && ticksReached(now, k.lockoutUntil) {
		k.pressed = raw
		k.lockoutUntil = now + window
	}
}
