// keymon polls the right keyboard half over the serial bridge, acting
// as the bus master, and prints key-state changes as they happen.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/cristibctr/notnyan-keys-right/host/serial"
	"github.com/cristibctr/notnyan-keys-right/protocol"
)

func main() {
	device := flag.String("device", "/dev/ttyUSB0", "serial device of the bridge")
	baud := flag.Int("baud", 115200, "serial baud rate")
	interval := flag.Duration("interval", 50*time.Millisecond, "poll interval")
	nkeys := flag.Int("keys", 24, "number of keys on the half")
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	port, err := serial.Open(cfg)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer port.Close()

	log.Printf("polling %s every %v", *device, *interval)

	prev := make([]byte, protocol.ReportSize(*nkeys))
	cur := make([]byte, protocol.ReportSize(*nkeys))
	protocol.FillReleased(prev)

	resync := false
	for {
		if resync {
			drain(port)
			resync = false
		}
		if err := pollOnce(port, cur); err != nil {
			log.Printf("poll: %v", err)
			// A failed or partial read leaves report bytes buffered on
			// the link; flush them so the next poll starts aligned.
			resync = true
			time.Sleep(*interval)
			continue
		}
		if line := formatChanges(prev, cur, *nkeys); line != "" {
			fmt.Println(line)
		}
		copy(prev, cur)
		time.Sleep(*interval)
	}
}

// pollOnce runs one master transfer: a request byte out, a full report
// back.
func pollOnce(port io.ReadWriter, report []byte) error {
	if _, err := port.Write([]byte{protocol.ReportRequest}); err != nil {
		return fmt.Errorf("request: %w", err)
	}
	if _, err := io.ReadFull(port, report); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// drain discards whatever is buffered on the link so the next request
// and reply line up again. Stops at the first empty read, which on a
// timeout-configured port is the read timeout.
func drain(port io.Reader) {
	var junk [64]byte
	for {
		n, err := port.Read(junk[:])
		if n == 0 || err != nil {
			return
		}
	}
}

// formatChanges renders the transition between two reports, or "" when
// nothing moved.
func formatChanges(prev, cur []byte, nkeys int) string {
	var parts []string
	for i := 0; i < nkeys; i++ {
		was, is := protocol.Pressed(prev, i), protocol.Pressed(cur, i)
		if was == is {
			continue
		}
		if is {
			parts = append(parts, fmt.Sprintf("+%d", i))
		} else {
			parts = append(parts, fmt.Sprintf("-%d", i))
		}
	}
	if parts == nil {
		return ""
	}
	down := protocol.PressedKeys(cur, nkeys)
	return fmt.Sprintf("% x  %s  down=%v", cur, strings.Join(parts, " "), down)
}
