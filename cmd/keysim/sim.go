//go:build !tinygo

package main

import (
	"errors"

	"github.com/cristibctr/notnyan-keys-right/core"
	"github.com/cristibctr/notnyan-keys-right/protocol"
)

// simPort implements core.PortDriver over a level word the UI owns.
// All 24 simulated switches live on one port.
type simPort struct {
	levels uint32
}

func (p *simPort) ConfigureInputPullUp(port core.PortID, mask uint32) error {
	p.levels |= mask
	return nil
}

func (p *simPort) ReadPort(port core.PortID) uint32 {
	return p.levels
}

// simBus implements core.BusSlaveDriver with the game acting as the
// bus master.
type simBus struct {
	ev core.BusEvents
	tx []byte
	rx []byte
}

func (b *simBus) SetEvents(ev core.BusEvents) { b.ev = ev }

func (b *simBus) ArmTransmit(buf []byte) error { b.tx = buf; return nil }

func (b *simBus) ArmReceive(buf []byte) error { b.rx = buf; return nil }

// poll runs one master transfer: request byte in, armed report out.
// The responder re-arms in between, exactly as on the real bus.
func (b *simBus) poll() []byte {
	if b.rx != nil {
		b.rx[0] = protocol.ReportRequest
	}
	if b.ev.ReceiveComplete != nil {
		b.ev.ReceiveComplete()
	}
	out := append([]byte(nil), b.tx...)
	if b.ev.TransferComplete != nil {
		b.ev.TransferComplete()
	}
	return out
}

// fault injects a peripheral error notification.
func (b *simBus) fault() {
	if b.ev.Error != nil {
		b.ev.Error(errors.New("injected bus fault"))
	}
}
