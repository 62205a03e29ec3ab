package core

import "github.com/cristibctr/notnyan-keys-right/protocol"

// Encode packs the current debounced states into buf, rebuilding every
// bit from scratch. Keys are visited in index order; once maxPressed
// pressed keys (if > 0) have been resolved the pass stops and every
// higher-index key is encoded as released regardless of its true state.
// Lowest index wins. That truncation bounds the work per pass when more
// keys are held than the consuming protocol can use, and the master
// relies on the exact cutoff order, so keep it.
func (s *Scanner) Encode(buf []byte, maxPressed int) {
	protocol.FillReleased(buf)
	pressed := 0
	for i := range s.state {
		if !s.state[i].pressed {
			continue
		}
		protocol.MarkPressed(buf, i)
		pressed++
		if maxPressed > 0 && pressed >= maxPressed {
			break
		}
	}
}
