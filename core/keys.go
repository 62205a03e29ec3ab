package core

import "fmt"

// Key is one monitored switch: the port it lives on and its bit within
// that port's read. Key switches are wired active low, pin grounded
// while the key is held.
type Key struct {
	Port PortID
	Mask uint32
}

// KeyMap lists every key on this half in report order: the slice index
// is the key's bit position in the wire report. The table is static
// configuration owned by the target and never mutated.
type KeyMap []Key

// Ports returns the distinct ports referenced by the map, in first-use
// order. The sampler reads each exactly once per scan.
func (m KeyMap) Ports() []PortID {
	var ports []PortID
	for _, k := range m {
		seen := false
		for _, p := range ports {
			if p == k.Port {
				seen = true
				break
			}
		}
		if !seen {
			ports = append(ports, k.Port)
		}
	}
	return ports
}

// PortMask returns the combined pin mask of every key on port p.
func (m KeyMap) PortMask(p PortID) uint32 {
	var mask uint32
	for _, k := range m {
		if k.Port == p {
			mask |= k.Mask
		}
	}
	return mask
}

// Configure sets up every key's pin as an input with pull-up, one
// driver call per port with the combined mask.
func (m KeyMap) Configure(d PortDriver) error {
	for _, p := range m.Ports() {
		if err := d.ConfigureInputPullUp(p, m.PortMask(p)); err != nil {
			return fmt.Errorf("configure port %d: %w", p, err)
		}
	}
	return nil
}
