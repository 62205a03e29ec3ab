//go:build linux && !tinygo

package main

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/cristibctr/notnyan-keys-right/core"
)

// chipPortDriver reads whole ports through the Linux GPIO character
// device. A core.PortID maps to one bulk line request, so a scan costs
// one Values call per port instead of one syscall per key. Bit i of a
// port read is the level of offsets[i].
type chipPortDriver struct {
	chip  *gpiocdev.Chip
	ports map[core.PortID][]int
	lines map[core.PortID]*gpiocdev.Lines
	vals  [32]int
}

func newChipPortDriver(chipName string, ports map[core.PortID][]int) (*chipPortDriver, error) {
	for p, offsets := range ports {
		if len(offsets) > 32 {
			return nil, fmt.Errorf("port %d: %d lines exceed the 32-bit port width", p, len(offsets))
		}
	}
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", chipName, err)
	}
	return &chipPortDriver{
		chip:  chip,
		ports: ports,
		lines: make(map[core.PortID]*gpiocdev.Lines),
	}, nil
}

// ConfigureInputPullUp requests every line of the port in one bulk
// request, as inputs with pull-up. The mask is implied by the offset
// table.
func (d *chipPortDriver) ConfigureInputPullUp(port core.PortID, mask uint32) error {
	offsets, ok := d.ports[port]
	if !ok {
		return fmt.Errorf("port %d has no line offsets", port)
	}
	lines, err := d.chip.RequestLines(offsets, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return fmt.Errorf("request lines %v: %w", offsets, err)
	}
	d.lines[port] = lines
	return nil
}

// ReadPort fetches the whole port with a single Values call. Sampling
// is infallible by contract; a failed ioctl reads as all released,
// which is what the pull-ups would report anyway.
func (d *chipPortDriver) ReadPort(port core.PortID) uint32 {
	lines, ok := d.lines[port]
	if !ok {
		return ^uint32(0)
	}
	vals := d.vals[:len(d.ports[port])]
	if err := lines.Values(vals); err != nil {
		return ^uint32(0)
	}
	word := ^uint32(0)
	for i, v := range vals {
		if v == 0 {
			word &^= 1 << i
		}
	}
	return word
}

func (d *chipPortDriver) Close() error {
	var firstErr error
	for _, lines := range d.lines {
		if err := lines.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := d.chip.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
