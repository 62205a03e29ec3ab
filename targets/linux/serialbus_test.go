//go:build linux && !tinygo

package main

import (
	"bytes"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cristibctr/notnyan-keys-right/core"
	"github.com/cristibctr/notnyan-keys-right/protocol"
)

// stubPort is a scriptable in-memory port for the bridge tests.
type stubPort struct {
	levels atomic.Uint32
}

func (s *stubPort) ConfigureInputPullUp(port core.PortID, mask uint32) error { return nil }

func (s *stubPort) ReadPort(port core.PortID) uint32 { return s.levels.Load() }

// duplex joins the two halves of a pipe pair into one ReadWriter.
type duplex struct {
	io.Reader
	io.Writer
}

func TestSerialBridgeRoundTrip(t *testing.T) {
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()

	port := &stubPort{}
	port.levels.Store(^uint32(0))

	keys := make(core.KeyMap, numKeys)
	for i := range keys {
		keys[i] = core.Key{Port: 0, Mask: 1 << i}
	}
	scanner, err := core.NewScanner(port, keys, 10)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	var now atomic.Uint32
	bus := newSerialBus(duplex{reqR, respW})
	responder := core.NewResponder(scanner, bus, now.Load, 0)
	if err := responder.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- bus.serve() }()

	// First poll: nothing pressed.
	report := make([]byte, protocol.ReportSize(numKeys))
	if _, err := reqW.Write([]byte{protocol.ReportRequest}); err != nil {
		t.Fatalf("write request: %v", err)
	}
	if _, err := io.ReadFull(respR, report); err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Equal(report, []byte{0xFF, 0xFF, 0xFF}) {
		t.Errorf("idle report = %x, want ffffff", report)
	}

	// Press key 6, advance past the previous lockout and poll again.
	port.levels.Store(^uint32(0) &^ (1 << 6))
	now.Store(20)
	if _, err := reqW.Write([]byte{protocol.ReportRequest}); err != nil {
		t.Fatalf("write request: %v", err)
	}
	if _, err := io.ReadFull(respR, report); err != nil {
		t.Fatalf("read report: %v", err)
	}
	if report[0] != 0xBF {
		t.Errorf("byte 0 = %#02x, want 0xbf", report[0])
	}

	reqW.Close()
	if err := <-done; err != io.EOF {
		t.Errorf("serve returned %v, want EOF", err)
	}
}

func TestSerialBridgeSurvivesIdleMaster(t *testing.T) {
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()

	port := &stubPort{}
	port.levels.Store(^uint32(0))

	keys := core.KeyMap{{Port: 0, Mask: 1}}
	scanner, err := core.NewScanner(port, keys, 10)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	bus := newSerialBus(duplex{reqR, respW})
	responder := core.NewResponder(scanner, bus, func() uint32 { return 0 }, 0)
	if err := responder.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- bus.serve() }()

	// A master that goes quiet parks the read; serve must still be
	// around to answer whenever the next poll shows up.
	time.Sleep(50 * time.Millisecond)
	select {
	case err := <-done:
		t.Fatalf("serve exited on an idle link: %v", err)
	default:
	}

	if _, err := reqW.Write([]byte{protocol.ReportRequest}); err != nil {
		t.Fatalf("write request: %v", err)
	}
	report := make([]byte, 1)
	if _, err := io.ReadFull(respR, report); err != nil {
		t.Fatalf("read report: %v", err)
	}
	if report[0] != 0xFF {
		t.Errorf("report = %#02x, want 0xff", report[0])
	}

	reqW.Close()
	if err := <-done; err != io.EOF {
		t.Errorf("serve returned %v, want EOF", err)
	}
}

func TestBridgePortOpensBlocking(t *testing.T) {
	cfg := bridgePortConfig("/dev/ttyUSB0", 115200)
	if cfg.ReadTimeout != 0 {
		t.Errorf("ReadTimeout = %v, want 0 (blocking reads)", cfg.ReadTimeout)
	}
}

func TestSerialBridgeRejectsBadRequestByte(t *testing.T) {
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()
	_ = respR

	port := &stubPort{}
	port.levels.Store(^uint32(0))

	keys := core.KeyMap{{Port: 0, Mask: 1}}
	scanner, err := core.NewScanner(port, keys, 10)
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}

	bus := newSerialBus(duplex{reqR, respW})
	responder := core.NewResponder(scanner, bus, func() uint32 { return 0 }, 0)
	if err := responder.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- bus.serve() }()

	// A stray byte is a transient fault: counted, recovered, no reply.
	if _, err := reqW.Write([]byte{0x00}); err != nil {
		t.Fatalf("write stray byte: %v", err)
	}
	reqW.Close()
	if err := <-done; err != io.EOF {
		t.Fatalf("serve returned %v, want EOF", err)
	}

	if responder.Errors() != 1 {
		t.Errorf("error count = %d, want 1", responder.Errors())
	}
	if responder.State() != core.StateTransmitting {
		t.Errorf("state = %v, want transmitting", responder.State())
	}
}
