// Key scanning pipeline: batched port sampling, per-key debounce and
// report encoding. The scanner owns all per-key state; there are no
// package-level tables.
package core

import (
	"fmt"

	"github.com/cristibctr/notnyan-keys-right/protocol"
)

// DefaultDebounceWindow is the debounce lockout in milliseconds.
const DefaultDebounceWindow = 10

// DefaultMaxPressed matches the 6-key rollover the consuming protocol
// supports.
const DefaultMaxPressed = 6

// Scanner turns raw port reads into debounced key states and encoded
// reports. Not safe for concurrent use; the responder drives it from a
// single event context.
type Scanner struct {
	keys   KeyMap
	ports  []PortID
	driver PortDriver
	window uint32
	state  []keyState
}

// NewScanner builds a scanner over the given port driver and key table.
// window is the debounce lockout in milliseconds; 0 selects
// DefaultDebounceWindow.
func NewScanner(driver PortDriver, keys KeyMap, window uint32) (*Scanner, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("empty key map")
	}
	for i, k := range keys {
		if k.Port >= maxPorts {
			return nil, fmt.Errorf("key %d: port %d out of range", i, k.Port)
		}
		if k.Mask == 0 {
			return nil, fmt.Errorf("key %d: empty pin mask", i)
		}
	}
	if window == 0 {
		window = DefaultDebounceWindow
	}
	return &Scanner{
		keys:   keys,
		ports:  keys.Ports(),
		driver: driver,
		window: window,
		state:  make([]keyState, len(keys)),
	}, nil
}

// NumKeys returns the number of keys in the scan order.
func (s *Scanner) NumKeys() int {
	return len(s.keys)
}

// ReportSize returns the encoded report length in bytes.
func (s *Scanner) ReportSize() int {
	return protocol.ReportSize(len(s.keys))
}

// Pressed returns key i's current debounced state.
func (s *Scanner) Pressed(i int) bool {
	return s.state[i].pressed
}

// snapshot reads every distinct port exactly once and stores the raw
// levels indexed by PortID.
func (s *Scanner) snapshot(levels *[maxPorts]uint32) {
	for _, p := range s.ports {
		levels[p] = s.driver.ReadPort(p)
	}
}

// Scan runs one full sample/debounce/encode pass at the given instant
// and writes the report into buf. buf must be ReportSize bytes.
// maxPressed caps how many pressed keys the encoder resolves (0 = all).
func (s *Scanner) Scan(now uint32, buf []byte, maxPressed int) {
	var levels [maxPorts]uint32
	s.snapshot(&levels)

	for i := range s.keys {
		k := &s.keys[i]
		// Active low: the pull-up holds a released key high.
		raw := levels[k.Port]&k.Mask == 0
		s.state[i].step(raw, now, s.window)
	}

	s.Encode(buf, maxPressed)
}
