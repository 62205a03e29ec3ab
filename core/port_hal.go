package core

// PortID identifies one physical input port: a GPIO bank, an I2C port
// expander, a bank of character-device lines. Opaque to the core; the
// key table gives it meaning.
type PortID uint8

// maxPorts bounds the per-scan level snapshot. PortID indexes a small
// dense table.
const maxPorts = 8

// PortDriver is the batched port-reader capability the sampler runs on.
// Implementations read a whole port in one operation; the sampler
// extracts individual keys by mask, so the per-key cost is a bit test
// rather than a peripheral call.
type PortDriver interface {
	// ConfigureInputPullUp configures every pin in mask as a digital
	// input with pull-up. Bring-up only, never called during scanning.
	ConfigureInputPullUp(port PortID, mask uint32) error

	// ReadPort returns the current logic levels of the whole port.
	// A read always yields a defined value: pull-ups hold released
	// keys high, so there is no error to report.
	ReadPort(port PortID) uint32
}
