package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cristibctr/notnyan-keys-right/protocol"
)

// loopPort answers every request with a canned report.
type loopPort struct {
	report   []byte
	requests bytes.Buffer
	out      bytes.Buffer
}

func (p *loopPort) Write(b []byte) (int, error) {
	p.requests.Write(b)
	p.out.Write(p.report)
	return len(b), nil
}

func (p *loopPort) Read(b []byte) (int, error) {
	return p.out.Read(b)
}

func TestPollOnce(t *testing.T) {
	port := &loopPort{report: []byte{0xF8, 0xFF, 0xFF}}
	report := make([]byte, 3)

	if err := pollOnce(port, report); err != nil {
		t.Fatalf("pollOnce failed: %v", err)
	}
	if !bytes.Equal(report, port.report) {
		t.Errorf("report = %x, want %x", report, port.report)
	}
	if got := port.requests.Bytes(); len(got) != 1 || got[0] != protocol.ReportRequest {
		t.Errorf("request bytes = %x, want [%02x]", got, protocol.ReportRequest)
	}
}

func TestDrainResyncsAfterShortRead(t *testing.T) {
	port := &loopPort{report: []byte{0xF8, 0xFF, 0xFF}}
	// Tail of an interrupted report is still sitting on the link.
	port.out.Write([]byte{0xFF, 0xFF})

	drain(port)

	report := make([]byte, 3)
	if err := pollOnce(port, report); err != nil {
		t.Fatalf("pollOnce after drain failed: %v", err)
	}
	if !bytes.Equal(report, port.report) {
		t.Errorf("report = %x, want %x", report, port.report)
	}
}

func TestFormatChanges(t *testing.T) {
	prev := []byte{0xFF, 0xFF, 0xFF}
	cur := []byte{0xF8, 0xFF, 0xFF} // keys 0,1,2 went down

	line := formatChanges(prev, cur, 24)
	for _, want := range []string{"+0", "+1", "+2", "down=[0 1 2]"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}

	// Releases show with a minus.
	line = formatChanges(cur, prev, 24)
	for _, want := range []string{"-0", "-1", "-2", "down=[]"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}

	if got := formatChanges(cur, cur, 24); got != "" {
		t.Errorf("no-change line = %q, want empty", got)
	}
}
