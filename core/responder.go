package core

import (
	"fmt"

	"github.com/cristibctr/notnyan-keys-right/protocol"
)

// ResponderState is the bus-slave state machine position, exposed for
// diagnostics and tests.
type ResponderState uint8

const (
	// StateIdle: constructed, peripheral not yet armed. Only seen
	// before Start; the running machine cycles through Arming,
	// Transmitting and Recovering, never back here.
	StateIdle ResponderState = iota
	// StateArming: pipeline pass in progress, report being rebuilt.
	StateArming
	// StateTransmitting: report armed, transfer may be in flight.
	StateTransmitting
	// StateRecovering: peripheral fault seen, re-arm pending.
	StateRecovering
)

func (s ResponderState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArming:
		return "arming"
	case StateTransmitting:
		return "transmitting"
	case StateRecovering:
		return "recovering"
	}
	return "unknown"
}

// Responder keeps the bus peripheral armed with a fresh key-state
// report. It is the only owner of the report buffer: every rebuild runs
// to completion inside the notification that triggered it, before the
// buffer is handed back to the peripheral, so the peripheral never
// observes a half-written report.
type Responder struct {
	scanner    *Scanner
	bus        BusSlaveDriver
	clock      Clock
	maxPressed int

	state   ResponderState
	report  []byte
	request [1]byte
	errors  uint32
}

// NewResponder wires the scan pipeline to a bus-slave driver.
// maxPressed bounds how many pressed keys each report resolves
// (0 = all). The driver's notifications are registered here; nothing is
// armed until Start.
func NewResponder(scanner *Scanner, bus BusSlaveDriver, clock Clock, maxPressed int) *Responder {
	r := &Responder{
		scanner:    scanner,
		bus:        bus,
		clock:      clock,
		maxPressed: maxPressed,
		report:     make([]byte, protocol.ReportSize(scanner.NumKeys())),
	}
	bus.SetEvents(BusEvents{
		TransferComplete: r.transferComplete,
		ReceiveComplete:  r.receiveComplete,
		Error:            r.busError,
	})
	return r
}

// Start runs the initial pipeline pass and arms the peripheral for the
// first master transfer. Failing to arm at bring-up is the one bus
// fault that is surfaced instead of swallowed.
func (r *Responder) Start() error {
	r.refresh()
	if err := r.bus.ArmReceive(r.request[:]); err != nil {
		return fmt.Errorf("arm receive: %w", err)
	}
	if err := r.bus.ArmTransmit(r.report); err != nil {
		return fmt.Errorf("arm transmit: %w", err)
	}
	r.state = StateTransmitting
	return nil
}

// refresh rebuilds the report in place from a fresh scan.
func (r *Responder) refresh() {
	r.state = StateArming
	r.scanner.Scan(r.clock(), r.report, r.maxPressed)
}

// rearm refreshes and hands the new report to the peripheral. An arm
// failure counts as a transient fault and is retried on whatever
// notification arrives next.
func (r *Responder) rearm() {
	r.refresh()
	if err := r.bus.ArmTransmit(r.report); err != nil {
		r.errors++
		r.state = StateRecovering
		return
	}
	r.state = StateTransmitting
}

// transferComplete: the master finished reading. Re-scan immediately so
// the next read sees freshly sampled keys, not the buffer from before
// this transfer.
func (r *Responder) transferComplete() {
	r.rearm()
}

// receiveComplete: the master wrote a request byte. Answer with a fresh
// report rather than arming a second listen.
func (r *Responder) receiveComplete() {
	r.rearm()
}

// busError: transient faults are self-healing. Count the fault, re-run
// the pipeline, re-arm unconditionally. No backoff, no escalation; the
// counter is the only trace left behind.
func (r *Responder) busError(err error) {
	r.errors++
	r.state = StateRecovering
	r.rearm()
}

// Report returns the armed report buffer. Read-only to callers.
func (r *Responder) Report() []byte {
	return r.report
}

// State returns the current state machine position.
func (r *Responder) State() ResponderState {
	return r.state
}

// Errors returns the number of transient bus faults recovered since
// start.
func (r *Responder) Errors() uint32 {
	return r.errors
}
