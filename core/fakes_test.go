package core

// Test doubles for the two driver capabilities.

// fakePort scripts raw port levels and counts driver calls.
type fakePort struct {
	levels     [maxPorts]uint32
	reads      map[PortID]int
	configured map[PortID]uint32
}

func newFakePort() *fakePort {
	f := &fakePort{
		reads:      make(map[PortID]int),
		configured: make(map[PortID]uint32),
	}
	// Pull-ups hold everything high until a test presses a key.
	for i := range f.levels {
		f.levels[i] = ^uint32(0)
	}
	return f
}

func (f *fakePort) ConfigureInputPullUp(port PortID, mask uint32) error {
	f.configured[port] |= mask
	return nil
}

func (f *fakePort) ReadPort(port PortID) uint32 {
	f.reads[port]++
	return f.levels[port]
}

// press grounds a key's pin, release lets the pull-up win.
func (f *fakePort) press(k Key) { f.levels[k.Port] &^= k.Mask }

func (f *fakePort) release(k Key) { f.levels[k.Port] |= k.Mask }

// fakeBus records arm calls and lets tests fire notifications.
type fakeBus struct {
	ev     BusEvents
	armed  []byte
	rx     []byte
	txArms [][]byte // snapshot copy taken at each ArmTransmit
	rxArms int
	armErr error
}

func (b *fakeBus) SetEvents(ev BusEvents) { b.ev = ev }

func (b *fakeBus) ArmTransmit(buf []byte) error {
	if b.armErr != nil {
		return b.armErr
	}
	b.armed = buf
	b.txArms = append(b.txArms, append([]byte(nil), buf...))
	return nil
}

func (b *fakeBus) ArmReceive(buf []byte) error {
	b.rx = buf
	b.rxArms++
	return nil
}

// singlePortMap builds n keys on one port, key i on bit i.
func singlePortMap(n int) KeyMap {
	keys := make(KeyMap, n)
	for i := range keys {
		keys[i] = Key{Port: 0, Mask: 1 << i}
	}
	return keys
}
