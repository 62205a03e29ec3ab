package core

// BusEvents carries the notification callbacks a bus-slave driver
// invokes. Drivers deliver notifications from a single event context,
// one at a time; a callback returns before the next one fires. That is
// what lets the responder rebuild its buffer without locking.
type BusEvents struct {
	// TransferComplete fires when the master has finished reading the
	// armed transmit buffer.
	TransferComplete func()

	// ReceiveComplete fires when the master has written into the armed
	// receive buffer.
	ReceiveComplete func()

	// Error fires on any peripheral-reported fault (NACK, framing, bus
	// timeout). The driver stays usable afterwards; re-arming is the
	// listener's job.
	Error func(err error)
}

// BusSlaveDriver is the two-wire bus-slave capability. The peripheral
// reads the armed transmit buffer whenever the master addresses it, so
// the buffer must not be written between ArmTransmit and the next
// TransferComplete or Error notification.
type BusSlaveDriver interface {
	// SetEvents registers the notification callbacks. Called once,
	// before arming.
	SetEvents(ev BusEvents)

	// ArmTransmit hands buf to the peripheral for the next
	// master-initiated read.
	ArmTransmit(buf []byte) error

	// ArmReceive hands buf to the peripheral as the landing zone for
	// master writes. The buffer stays armed across transfers.
	ArmReceive(buf []byte) error
}
