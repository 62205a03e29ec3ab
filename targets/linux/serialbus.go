//go:build linux && !tinygo

package main

import (
	"fmt"
	"io"

	"github.com/cristibctr/notnyan-keys-right/core"
	"github.com/cristibctr/notnyan-keys-right/protocol"
)

// serialBus adapts a byte-stream request/response link to the
// bus-slave capability: every request byte the master writes surfaces
// as ReceiveComplete, and the armed report is written straight back.
// It stands in for the I2C peripheral on rigs without one.
type serialBus struct {
	port io.ReadWriter
	ev   core.BusEvents
	tx   []byte
	rx   []byte
}

// newSerialBus wraps a serial link. The port must be opened blocking,
// with no read timeout: tarm surfaces a receive timeout as a zero-byte
// EOF read, indistinguishable from a closed link, and a merely idle
// master must block the read rather than look like link death.
func newSerialBus(port io.ReadWriter) *serialBus {
	return &serialBus{port: port}
}

func (b *serialBus) SetEvents(ev core.BusEvents) {
	b.ev = ev
}

func (b *serialBus) ArmTransmit(buf []byte) error {
	b.tx = buf
	return nil
}

func (b *serialBus) ArmReceive(buf []byte) error {
	b.rx = buf
	return nil
}

// serve reads request bytes until the link closes. On a blocking port
// an idle master simply parks the read; EOF only ever means the link
// is gone. All core callbacks run on this goroutine, one at a time,
// matching the single event context the responder relies on.
func (b *serialBus) serve() error {
	var req [1]byte
	for {
		if _, err := b.port.Read(req[:]); err != nil {
			if err == io.EOF {
				return err
			}
			if b.ev.Error != nil {
				b.ev.Error(err)
			}
			continue
		}
		if req[0] != protocol.ReportRequest {
			if b.ev.Error != nil {
				b.ev.Error(fmt.Errorf("unexpected request byte %#02x", req[0]))
			}
			continue
		}

		if b.rx != nil {
			b.rx[0] = req[0]
		}
		// The responder refreshes and re-arms the transmit inside this
		// callback, so b.tx is fresh by the time it is written out.
		if b.ev.ReceiveComplete != nil {
			b.ev.ReceiveComplete()
		}
		if _, err := b.port.Write(b.tx); err != nil {
			if b.ev.Error != nil {
				b.ev.Error(err)
			}
			continue
		}
		if b.ev.TransferComplete != nil {
			b.ev.TransferComplete()
		}
	}
}
