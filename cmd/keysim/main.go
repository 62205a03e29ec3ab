//go:build !tinygo

// keysim is a desktop simulator for the right-half firmware: 24
// on-screen switches with injected contact bounce, a simulated bus
// master polling every frame, and a live view of the encoded report.
// It runs the identical core pipeline the hardware targets run.
//
// Time is exaggerated so the debouncer is observable at 60 FPS: one
// frame advances the millisecond counter by 16, and the default bounce
// and debounce windows are scaled up to match.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/cristibctr/notnyan-keys-right/core"
)

const (
	simKeys     = 24
	frameMillis = 16
	cols        = 8
	cellSize    = 44
	cellGap     = 6
)

// Three rows of eight, matching the on-screen grid.
var keyBindings = [simKeys]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyT, ebiten.KeyY, ebiten.KeyU, ebiten.KeyI,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyJ, ebiten.KeyK,
}

// switchSim models one mechanical switch: the held state plus a bounce
// window after each edge during which the raw level flickers.
type switchSim struct {
	held      bool
	bounceEnd uint32
}

type game struct {
	port    *simPort
	bus     *simBus
	scanner *core.Scanner
	resp    *core.Responder

	now          uint32
	bounceMillis uint32
	sw           [simKeys]switchSim
	lastReport   []byte
}

func (g *game) Update() error {
	g.now += frameMillis

	for i := range g.sw {
		sw := &g.sw[i]
		held := ebiten.IsKeyPressed(keyBindings[i])
		if held != sw.held {
			sw.held = held
			sw.bounceEnd = g.now + g.bounceMillis
		}

		// Active low: a released switch floats high on its pull-up.
		level := !sw.held
		if int32(sw.bounceEnd-g.now) > 0 && rand.Intn(2) == 0 {
			level = !level
		}
		if level {
			g.port.levels |= 1 << i
		} else {
			g.port.levels &^= 1 << i
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.bus.fault()
	}

	// The master polls every frame, like the left half does on I2C.
	g.lastReport = g.bus.poll()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	for i := 0; i < simKeys; i++ {
		x := float32(cellGap + (i%cols)*(cellSize+cellGap))
		y := float32(cellGap + (i/cols)*(cellSize+cellGap))

		fill := color.RGBA{0x30, 0x30, 0x38, 0xFF}
		switch {
		case g.scanner.Pressed(i):
			fill = color.RGBA{0x20, 0xA0, 0x40, 0xFF}
		case g.sw[i].held:
			// Held but not yet debounced through.
			fill = color.RGBA{0x80, 0x80, 0x30, 0xFF}
		}
		vector.DrawFilledRect(screen, x, y, cellSize, cellSize, fill, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", i), int(x)+4, int(y)+4)
	}

	textY := cellGap + 3*(cellSize+cellGap) + 8
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("report % x   state=%v   faults=%d",
			g.lastReport, g.resp.State(), g.resp.Errors()),
		cellGap, textY)
	ebitenutil.DebugPrintAt(screen,
		"keys: 1-8 / Q-I / A-K    F1 injects a bus fault",
		cellGap, textY+16)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cellGap + cols*(cellSize+cellGap), cellGap + 3*(cellSize+cellGap) + 44
}

func main() {
	window := flag.Uint("debounce", 48, "debounce window in simulated ms")
	bounce := flag.Uint("bounce", 32, "contact bounce duration in simulated ms")
	maxPressed := flag.Int("max-pressed", core.DefaultMaxPressed, "pressed keys resolved per report, 0 for all")
	flag.Parse()

	keys := make(core.KeyMap, simKeys)
	for i := range keys {
		keys[i] = core.Key{Port: 0, Mask: 1 << i}
	}

	port := &simPort{}
	if err := keys.Configure(port); err != nil {
		log.Fatalf("configure: %v", err)
	}
	scanner, err := core.NewScanner(port, keys, uint32(*window))
	if err != nil {
		log.Fatalf("scanner: %v", err)
	}

	g := &game{
		port:         port,
		bus:          &simBus{},
		scanner:      scanner,
		bounceMillis: uint32(*bounce),
	}
	g.resp = core.NewResponder(scanner, g.bus, func() uint32 { return g.now }, *maxPressed)
	if err := g.resp.Start(); err != nil {
		log.Fatalf("responder: %v", err)
	}
	g.lastReport = append([]byte(nil), g.resp.Report()...)

	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("notnyan right half")
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
