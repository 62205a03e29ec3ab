// Wire format for the key-state report served to the left half.
// The bit layout here is the contract the bus master depends on and is
// shared by the firmware encoder, the host tools and the tests.
package protocol

// ReportRequest is the single byte a master writes over the serial
// bridge before reading a report. The I2C transport has no request
// byte; there the master simply addresses a read.
const ReportRequest = 0x5A

// ReportSize returns the number of report bytes needed for nkeys keys.
func ReportSize(nkeys int) int {
	return (nkeys + 7) / 8
}

// FillReleased sets every bit in buf to the released level (1),
// including the unused high bits of the final byte.
func FillReleased(buf []byte) {
	for i := range buf {
		buf[i] = 0xFF
	}
}

// MarkPressed encodes key i as pressed: bit i%8 of byte i/8 is 0 when
// the key is down.
func MarkPressed(buf []byte, i int) {
	buf[i>>3] &^= 1 << (i & 7)
}

// Pressed reports whether key i is encoded as pressed.
func Pressed(buf []byte, i int) bool {
	return buf[i>>3]&(1<<(i&7)) == 0
}

// PressedKeys returns the indices of all keys encoded as pressed, in
// ascending order. Returns nil when no key is down.
func PressedKeys(buf []byte, nkeys int) []int {
	var keys []int
	for i := 0; i < nkeys; i++ {
		if Pressed(buf, i) {
			keys = append(keys, i)
		}
	}
	return keys
}
